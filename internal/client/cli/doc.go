// Package cli implements the interactive cmskeeper client: a REPL whose
// prompt and command set follow the authentication state stream produced by
// the session coordinator. Unauthenticated users see the login view
// (register/login), authenticated users the session view (whoami, status,
// logout); while the state is still unknown a neutral splash prompt shows.
package cli
