package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordHasher hashes and checks passwords with an adaptive cost.
type BcryptPasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password hash: %w", err)
	}
	return hash, nil
}

func (h *BcryptPasswordHasher) Verify(password string, hash []byte) error {
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		// Same error for mismatch and malformed hash.
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// VerifyDummy burns the same bcrypt work as Verify against a throwaway
// hash. Used when the username is unknown so response time does not reveal
// whether an account exists.
func (h *BcryptPasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("ticketapp-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
