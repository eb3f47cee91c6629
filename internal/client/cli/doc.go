// Package cli provides the interactive DBMelt command-line client.
//
// It wires configuration, the credential store, the API gateway and the
// session controller, then runs a REPL whose command set depends on the
// session state:
//
//	Not logged in: help, register, login, status, exit
//	Logged in:     help, whoami, status, logout, exit
//
// The logged-in command set is the terminal's dashboard. Errors from a
// command are printed inline and never end the loop.
package cli
