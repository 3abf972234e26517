// Package models contains value records shared across the cmskeeper client.
package models

// User is the identity record of the authenticated principal.
//
// User is a plain comparable value: equality is structural, so consumers can
// diff authentication states with == to decide whether to react.
type User struct {
	ID       string
	Username string
	Email    string
}

// Empty is the sentinel used whenever no authenticated principal exists.
// All comparisons against it are by value; never compare by pointer.
var Empty = User{ID: "-"}

// IsEmpty reports whether u is the empty sentinel.
func (u User) IsEmpty() bool {
	return u == Empty
}
