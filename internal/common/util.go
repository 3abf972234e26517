// Package common contains small helpers shared across client components.
package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Use it to remove sensitive data such as passwords from memory after
// use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
