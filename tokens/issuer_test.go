package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
)

func hmacTestConfig() *config.JWTConfiguration {
	return &config.JWTConfiguration{
		Algorithm:      "HS256",
		Issuer:         "triptogether.test",
		Audience:       []string{"triptogether.test"},
		Expiry:         time.Hour,
		HMACSigningKey: "fBXzDD-VXWDknxSAFXuWk9fyJAgkfeMEyHITS1hkTzg",
	}
}

func TestIssueAndParseSessionToken(t *testing.T) {
	assert := assert.New(t)
	issuer := NewIssuer(zap.NewNop(), hmacTestConfig())

	uid := uuid.MustParse("d1ef48c5-1fad-4514-ba2c-3a1851d39f87")
	token, err := issuer.IssueSessionToken(uid, "mika@example.com", "Mika Example")
	assert.NoError(err)

	signed, err := issuer.Sign(token)
	assert.NoError(err)
	assert.NotEmpty(signed)

	parsed, err := issuer.Parse(signed)
	assert.NoError(err)
	assert.Equal(uid.String(), parsed.Subject())
	assert.Equal("triptogether.test", parsed.Issuer())

	email, ok := parsed.Get(ClaimEmail)
	assert.True(ok)
	assert.Equal("mika@example.com", email)
	name, ok := parsed.Get(ClaimName)
	assert.True(ok)
	assert.Equal("Mika Example", name)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	assert := assert.New(t)
	issuer := NewIssuer(zap.NewNop(), hmacTestConfig())

	token, err := issuer.IssueSessionToken(uuid.New(), "mika@example.com", "Mika")
	assert.NoError(err)
	signed, err := issuer.Sign(token)
	assert.NoError(err)

	// flip a byte in the signature
	signed[len(signed)-1] ^= 0x01
	_, err = issuer.Parse(signed)
	assert.Error(err)
}

func TestParseRejectsForeignIssuer(t *testing.T) {
	assert := assert.New(t)
	issuer := NewIssuer(zap.NewNop(), hmacTestConfig())

	otherCfg := hmacTestConfig()
	otherCfg.Issuer = "somebody.else"
	other := NewIssuer(zap.NewNop(), otherCfg)

	token, err := other.IssueSessionToken(uuid.New(), "mika@example.com", "Mika")
	assert.NoError(err)
	signed, err := other.Sign(token)
	assert.NoError(err)

	_, err = issuer.Parse(signed)
	assert.Error(err)
}

func TestHMACKeysAreNeverPublished(t *testing.T) {
	assert := assert.New(t)
	issuer := NewIssuer(zap.NewNop(), hmacTestConfig())
	set, err := issuer.AsPublicOnlyJWKSet()
	assert.NoError(err)
	assert.Equal(0, set.Len())
}

func TestTokenCarriesConfiguredExpiry(t *testing.T) {
	assert := assert.New(t)
	cfg := hmacTestConfig()
	cfg.Expiry = 30 * time.Minute
	issuer := NewIssuer(zap.NewNop(), cfg)

	token, err := issuer.IssueSessionToken(uuid.New(), "mika@example.com", "Mika")
	assert.NoError(err)
	lifetime := token.Expiration().Sub(token.IssuedAt())
	assert.Equal(30*time.Minute, lifetime)
}
