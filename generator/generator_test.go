package generator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestCreateInviteTokenIsURLSafe(t *testing.T) {
	assert := assert.New(t)
	g := New()
	token := string(g.CreateInviteToken())
	assert.Regexp(urlSafe, token)
	// 32 random bytes base64url encoded without padding
	assert.Len(token, 43)
}

func TestCreateSecureTokenWithSize(t *testing.T) {
	assert := assert.New(t)
	g := New()
	seen := make(map[RandomTokenType]bool)
	for i := 0; i < 100; i++ {
		token := g.CreateSecureTokenWithSize(64)
		assert.Regexp(urlSafe, string(token))
		assert.False(seen[token], "token generated twice")
		seen[token] = true
	}
}
