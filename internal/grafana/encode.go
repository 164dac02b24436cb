package grafana

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/dashgen/internal/errors"
)

// Encode writes d as JSON with 2-space indentation. Non-ASCII text and
// characters such as <, > and & are written literally.
func Encode(w io.Writer, d *Dashboard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// Marshal returns the encoded form of d.
func Marshal(d *Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes d fully in memory and then writes it to path, so a
// failure never leaves a half-written dashboard behind.
func WriteFile(path string, d *Dashboard) error {
	data, err := Marshal(d)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Failed to encode dashboard",
			"This is a bug; please report it with your source file")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot write dashboard to "+path,
			"Check that the directory exists and is writable")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot write dashboard to "+path,
			"Check free disk space")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot write dashboard to "+path, "")
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot set permissions on "+path, "")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Cannot write dashboard to "+path,
			"Check that the destination is writable")
	}
	return nil
}
