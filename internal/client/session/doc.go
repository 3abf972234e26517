// Package session is the authentication core of the client: the repository
// owning the authentication status stream, the directory caching the current
// principal, and the coordinator turning raw status events into the composite
// states that drive navigation.
//
// Wiring is one repository, one directory, one coordinator per application
// lifetime. The repository's stream is the only channel through which session
// state reaches the rest of the program.
package session
