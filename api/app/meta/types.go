package meta

import "net/http"

type serviceMetaData struct {
	Issuer  string `json:"issuer"`
	Name    string `json:"name"`
	Site    string `json:"site"`
	JWKSUri string `json:"jwks_uri"`
}

func (*serviceMetaData) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}
