// Package cli implements the dashgen command-line interface.
//
// Commands are package-level cobra.Command values registered in init
// functions. Each one delegates to a plain function (Generate, Init) that
// takes an options struct, so the work can be tested without cobra.
//
// # Command Structure
//
//	dashgen [-s source] [-o output]  - Generate the dashboard
//	dashgen validate                 - Build in memory, write nothing
//	dashgen init [file]              - Scaffold a starter source file
//	dashgen version                  - Print build information
//	dashgen completion <shell>       - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --base-dir, --verbose, --quiet, --no-color, --json)
// are persistent on the root command. Values are layered as flags, then
// DASHGEN_* environment variables, then .dashgen.yaml, then defaults.
//
// With --json, human output is suppressed and a single JSONEnvelope is
// printed to stdout, for success and failure alike.
package cli
