package auth

import "golang.org/x/crypto/bcrypt"

// PinHasher defines the hashing strategy for the workspace PIN.
type PinHasher interface {
	Hash(pin string) (string, error)
	Compare(hash string, pin string) error
}

// BcryptHasher uses bcrypt to hash PIN codes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for the provided PIN.
func (h *BcryptHasher) Hash(pin string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks a PIN against the stored hash.
func (h *BcryptHasher) Compare(hash string, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
}
