package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into salted, self-describing
// digests and checks candidates against them.
//
// Verify never returns an error: a malformed or empty digest is simply a
// mismatch.
type PasswordHasher interface {
	// Hash returns a fresh salted digest of plaintext. Two calls with the
	// same input return different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. The comparison runs
	// in constant time with respect to the digest.
	Verify(plaintext, digest string) bool
}
