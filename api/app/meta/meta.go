package meta

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/tokens"
)

// MetaRessource contains the .well-known endpoints
type MetaRessource struct {
	log    *zap.Logger
	cfg    *config.BehaviourConfiguration
	issuer *tokens.TokenIssuer
}

func (m *MetaRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/triptogether-configuration", m.serviceConfiguration)
	r.Get("/jwks", m.jwks)
	return r
}

func (m *MetaRessource) jwks(w http.ResponseWriter, _ *http.Request) {
	jwk, err := m.issuer.AsPublicOnlyJWKSet()
	if err != nil {
		w.WriteHeader(500)
		return
	}
	b, err := json.Marshal(jwk)
	if err != nil {
		w.WriteHeader(500)
		return
	}
	_, _ = w.Write(b)
}

func (m *MetaRessource) serviceConfiguration(w http.ResponseWriter, r *http.Request) {
	meta := &serviceMetaData{
		Issuer:  m.issuer.Issuer(),
		Name:    m.cfg.Name,
		Site:    m.cfg.Site,
		JWKSUri: fmt.Sprintf("%s/.well-known/jwks", m.cfg.ServiceDomain),
	}
	err := render.Render(w, r, meta)
	if err != nil {
		m.log.Error("unable to render response", zap.Error(err))
	}
}

func NewMetaRessource(
	log *zap.Logger,
	cfg *config.BehaviourConfiguration,
	issuer *tokens.TokenIssuer,
) *MetaRessource {
	return &MetaRessource{log: log, cfg: cfg, issuer: issuer}
}
