package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokenFromFullLink(t *testing.T) {
	assert := assert.New(t)
	token, ok := ExtractToken("https://triptogether.example.com/invite/dGVzdC10b2tlbg")
	assert.True(ok)
	assert.Equal("dGVzdC10b2tlbg", token)
}

func TestExtractTokenFromLinkWithTrailingSlash(t *testing.T) {
	assert := assert.New(t)
	token, ok := ExtractToken("https://triptogether.example.com/invite/dGVzdC10b2tlbg/")
	assert.True(ok)
	assert.Equal("dGVzdC10b2tlbg", token)
}

func TestExtractTokenFromBareToken(t *testing.T) {
	assert := assert.New(t)
	token, ok := ExtractToken("dGVzdC10b2tlbg")
	assert.True(ok)
	assert.Equal("dGVzdC10b2tlbg", token)
}

func TestExtractTokenTrimsWhitespace(t *testing.T) {
	assert := assert.New(t)
	token, ok := ExtractToken("  dGVzdC10b2tlbg \r\n")
	assert.True(ok)
	assert.Equal("dGVzdC10b2tlbg", token)
}

func TestExtractTokenRejectsEmptyInput(t *testing.T) {
	assert := assert.New(t)
	_, ok := ExtractToken("   ")
	assert.False(ok)
}

func TestExtractTokenRejectsLinkWithoutInviteSegment(t *testing.T) {
	assert := assert.New(t)
	_, ok := ExtractToken("https://triptogether.example.com/trips/abc")
	assert.False(ok)
}

func TestExtractTokenRejectsGarbage(t *testing.T) {
	assert := assert.New(t)
	_, ok := ExtractToken("not a token at all!")
	assert.False(ok)
}
