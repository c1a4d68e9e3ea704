package meta

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/tokens"
)

func testRessource() *MetaRessource {
	bcfg := &config.BehaviourConfiguration{
		Name:          "TripTogether",
		Site:          "https://triptogether.example.com",
		ServiceDomain: "https://api.triptogether.example.com",
	}
	tcfg := &config.JWTConfiguration{
		Issuer:         "triptogether.test",
		Algorithm:      "HS512",
		Expiry:         time.Hour,
		HMACSigningKey: "fBXzDD-VXWDknxSAFXuWk9fyJAgkfeMEyHITS1hkTzg",
	}
	issuer := tokens.NewIssuer(zap.NewNop(), tcfg)
	return NewMetaRessource(zap.NewNop(), bcfg, issuer)
}

func TestServiceConfigurationEndpoint(t *testing.T) {
	assert := assert.New(t)
	m := testRessource()

	req := httptest.NewRequest(http.MethodGet, "/triptogether-configuration", nil)
	rec := httptest.NewRecorder()
	m.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	var body serviceMetaData
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal("triptogether.test", body.Issuer)
	assert.Equal("TripTogether", body.Name)
	assert.Equal("https://triptogether.example.com", body.Site)
	assert.Equal("https://api.triptogether.example.com/.well-known/jwks", body.JWKSUri)
}

func TestJWKSEndpointStaysEmptyForHMAC(t *testing.T) {
	assert := assert.New(t)
	m := testRessource()

	req := httptest.NewRequest(http.MethodGet, "/jwks", nil)
	rec := httptest.NewRecorder()
	m.Router().ServeHTTP(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	// symmetric keys are never served
	assert.JSONEq(`{"keys":[]}`, rec.Body.String())
}
