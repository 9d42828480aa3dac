package game

import (
	"crypto/rand"

	"github.com/alexanderho00001/SignWave/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Codegen mints 8-char alphanumeric room codes. Uniqueness is enforced by
// the store's unique index, the service retries on collision.
type Codegen struct{}

func NewCodegen() Codegen {
	return Codegen{}
}

func (Codegen) Generate() string {
	b := make([]byte, domain.RoomCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}
