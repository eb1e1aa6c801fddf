package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// NonceBits is the size of the anoncreds nonce.
const NonceBits = 80

var nonceMax = new(big.Int).Lsh(big.NewInt(1), NonceBits)

func gen() *big.Int {
	r, err := rand.Int(rand.Reader, nonceMax)
	if err != nil {
		panic("cannot create nonce")
	}
	return r
}

// NewNonceStr generates new 80 bit nonce with Go's crypto package, and returns
// its decimal string the same way libindy does.
func NewNonceStr() string {
	return gen().String()
}

// UUID generates new random UUID string.
func UUID() string {
	return uuid.New().String()
}
