// Package password is the one-way credential transform. Hashing embeds a
// random salt, so two hashes of the same plaintext differ while both verify.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "bizcore/pkg/domain-errors"
)

// dummyHash is a valid bcrypt hash of an unknowable random string. Login uses
// it to keep the verification cost constant when no user matches the email.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Costs outside the valid
// bcrypt range fall back to the default cost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash creates a bcrypt hash of the plaintext. Empty input is a validation
// error; the randomized salt is baked into the output.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", dErrors.New(dErrors.CodeValidation, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash password")
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored credential. Mismatches
// and malformed stored hashes both return false, never an error.
func (h *Hasher) Verify(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}

// DummyCompare burns one bcrypt comparison against a fixed hash. Login calls
// it when no user exists for an email so the two failure paths cost the same.
func (h *Hasher) DummyCompare(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
}
