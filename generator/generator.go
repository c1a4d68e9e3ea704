package generator

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"
)

// RandomTokenType is a freshly generated opaque token string
type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateInviteToken returns a url-safe token with 256 bits of entropy,
// used for invite links. The resulting string only contains [A-Za-z0-9_-].
func (g *RandomTokenGenerator) CreateInviteToken() RandomTokenType {
	return g.CreateSecureTokenWithSize(32)
}

func (*RandomTokenGenerator) CreateSecureTokenWithSize(size int) RandomTokenType {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(removePadding(base64.URLEncoding.EncodeToString(b)))
}

func removePadding(token string) string {
	return strings.TrimRight(token, "=")
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
