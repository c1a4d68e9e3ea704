package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/triptogether/triptogether/user"
)

const stateLifetime = 10 * time.Minute

// googleFlow implements the federated quick-join signin. State nonces
// live in memory, the service runs as a single instance.
type googleFlow struct {
	res *AuthRessource

	mu     sync.Mutex
	states map[string]time.Time
}

func newGoogleFlow(res *AuthRessource) *googleFlow {
	return &googleFlow{
		res:    res,
		states: make(map[string]time.Time),
	}
}

func (g *googleFlow) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.res.cfg.Google.ClientID,
		ClientSecret: g.res.cfg.Google.ClientSecret,
		RedirectURL:  fmt.Sprintf("%s/auth/google/callback", g.res.cfg.Behaviour.ServiceDomain),
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (g *googleFlow) saveState(state string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	for s, expires := range g.states {
		if now.After(expires) {
			delete(g.states, s)
		}
	}
	g.states[state] = now.Add(stateLifetime)
}

func (g *googleFlow) consumeState(state string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	expires, ok := g.states[state]
	if !ok {
		return false
	}
	delete(g.states, state)
	return time.Now().Before(expires)
}

func (g *googleFlow) errorRedirect(w http.ResponseWriter, r *http.Request, reason string) {
	target := fmt.Sprintf("%s/login?error=%s", g.res.cfg.Behaviour.Site, url.QueryEscape(reason))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (g *googleFlow) serveLogin(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		g.res.log.Error("failed to generate OAuth state", zap.Error(err))
		g.errorRedirect(w, r, "internal")
		return
	}
	g.saveState(state)
	http.Redirect(w, r, g.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (g *googleFlow) serveCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		g.res.log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		g.errorRedirect(w, r, "google_denied")
		return
	}
	state := r.URL.Query().Get("state")
	if state == "" || !g.consumeState(state) {
		g.res.log.Warn("invalid or expired OAuth state")
		g.errorRedirect(w, r, "invalid_state")
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		g.errorRedirect(w, r, "invalid_code")
		return
	}
	token, err := g.oauth2Config().Exchange(ctx, code)
	if err != nil {
		g.res.log.Error("failed to exchange OAuth code", zap.Error(err))
		g.errorRedirect(w, r, "token_exchange")
		return
	}
	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		g.res.log.Error("failed to fetch Google user info", zap.Error(err))
		g.errorRedirect(w, r, "user_info")
		return
	}

	signedIn, err := g.res.signInService.SignInWithGoogle(ctx, googleUser.ID)
	if errors.Is(err, user.ErrEntityDoesNotExist) {
		var avatar *string
		if googleUser.Picture != "" {
			avatar = &googleUser.Picture
		}
		_, rerr := g.res.userService.RegisterGoogleUser(
			ctx,
			googleUser.ID,
			googleUser.Email,
			googleUser.Name,
			avatar,
		)
		if rerr != nil {
			g.res.log.Error("could not register google user", zap.Error(rerr))
			g.errorRedirect(w, r, "signup_failed")
			return
		}
		signedIn, err = g.res.signInService.SignInWithGoogle(ctx, googleUser.ID)
	}
	if err != nil {
		g.res.log.Error("google signin failed", zap.Error(err))
		g.errorRedirect(w, r, "signin_failed")
		return
	}

	sessionToken, err := g.res.issuer.IssueSessionToken(
		signedIn.UserID,
		signedIn.Email,
		signedIn.FullName,
	)
	if err != nil {
		g.errorRedirect(w, r, "internal")
		return
	}
	signed, err := g.res.issuer.Sign(sessionToken)
	if err != nil {
		g.errorRedirect(w, r, "internal")
		return
	}
	target := fmt.Sprintf(
		"%s/auth/callback#access_token=%s",
		g.res.cfg.Behaviour.Site,
		url.QueryEscape(string(signed)),
	)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}
