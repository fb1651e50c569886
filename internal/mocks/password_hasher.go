package mocks

import (
	"errors"

	"github.com/phrazzld/taskboard/internal/service/auth"
)

// FakeHashPrefix is prepended to a password to form its fake hash.
const FakeHashPrefix = "hashed:"

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare on mismatch.
var ErrPasswordMismatch = errors.New("mock: password mismatch")

// MockPasswordHasher is a reversible stand-in for bcrypt.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCalls counts Compare invocations.
	CompareCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return FakeHashPrefix + password, nil
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalls++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != FakeHashPrefix+password {
		return ErrPasswordMismatch
	}
	return nil
}
