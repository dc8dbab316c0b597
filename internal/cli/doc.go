// Package cli turns the converter's three positional arguments into a
// geodesy.GeodeticPosition, runs the conversion and prints the result.
// It owns the usage and parse error messages and the process exit code.
package cli
