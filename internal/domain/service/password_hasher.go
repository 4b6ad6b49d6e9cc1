// Package service defines interfaces for core, stateless domain logic.
package service

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash generates a salted one-way hash from a plaintext password.
	// Two calls with the same input return different hashes.
	// An empty password is rejected.
	Hash(password string) (string, error)

	// Check reports whether password matches hash. The comparison runs in constant time
	// and a malformed hash never matches.
	Check(password, hash string) bool
}
