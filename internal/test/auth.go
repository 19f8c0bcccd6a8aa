package test

import (
	"errors"

	pkgAuth "github.com/dch2rfzbnb-cmyk/nano-crm/internal/pkg/auth"
)

// HasherStub provides deterministic PIN hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied PIN.
func (h HasherStub) Hash(pin string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(pin)
	}
	return "hash:" + pin, nil
}

// Compare validates a PIN against the stored hash.
func (h HasherStub) Compare(hash string, pin string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, pin)
	}
	if hash != "hash:"+pin {
		return errors.New("mismatch")
	}
	return nil
}

var _ pkgAuth.PinHasher = HasherStub{}
