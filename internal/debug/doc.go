// Package debug provides file-backed debug logging for twig.
//
// Nothing is written to the terminal while the dashboard owns it, so all
// diagnostics go to a log file enabled with the --debug flag.
package debug
