// package ui implements the terminal interface with bubbletea
//
// Shell is the root model and routes between the login, register, catalog,
// profile, and admin controllers. Each controller is mounted fresh per
// navigation with a generation stamp; asynchronous results carrying an old
// stamp are discarded, so slow responses never mutate a screen the user has
// already left.
package ui
