package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/securevault/vaultcore/internal/logger"
	"github.com/securevault/vaultcore/models"
)

// FirebaseAuthConfig carries the connection settings for the Firebase Auth
// REST API.
type FirebaseAuthConfig struct {
	// APIKey is the web API key of the Firebase project.
	APIKey string
	// BaseURL overrides the Identity Toolkit endpoint, used in tests.
	BaseURL string
	// TokenURL overrides the secure-token refresh endpoint, used in tests.
	TokenURL string
	// RequestTimeout bounds individual REST calls.
	RequestTimeout time.Duration
}

// refreshSkew is how long before expiry a token is considered stale.
const refreshSkew = time.Minute

// firebaseIdentityProvider implements [IdentityProvider] against the
// Firebase Auth REST API. The session (identity, ID token, refresh token)
// lives in memory for the life of the process; sign-out is a client-side
// discard because the REST API has no sign-out endpoint.
type firebaseIdentityProvider struct {
	client   *resty.Client
	apiKey   string
	authURL  string
	tokenURL string
	log      *logger.Logger

	mu           sync.RWMutex
	identity     *models.Identity
	idToken      string
	refreshToken string
	expiresAt    time.Time

	changes chan *models.Identity
}

// NewFirebaseIdentityProvider wires a Firebase-backed identity provider.
func NewFirebaseIdentityProvider(cfg FirebaseAuthConfig, log *logger.Logger) (IdentityProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("firebase identity provider: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://identitytoolkit.googleapis.com/v1"
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = "https://securetoken.googleapis.com/v1/token"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	return &firebaseIdentityProvider{
		client:   resty.New().SetTimeout(cfg.RequestTimeout),
		apiKey:   cfg.APIKey,
		authURL:  strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL: cfg.TokenURL,
		log:      log,
		changes:  make(chan *models.Identity, 8),
	}, nil
}

// authResponse is the shared response shape of accounts:signUp and
// accounts:signInWithPassword.
type authResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	ExpiresIn    string `json:"expiresIn"`
}

func (p *firebaseIdentityProvider) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	resp, err := p.accountsCall(ctx, "signUp", email, password)
	if err != nil {
		return models.Identity{}, err
	}

	// The account exists now, but the session deliberately stays signed
	// out: the user signs in as a separate step.
	return models.Identity{UID: resp.LocalID, Email: resp.Email}, nil
}

func (p *firebaseIdentityProvider) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	resp, err := p.accountsCall(ctx, "signInWithPassword", email, password)
	if err != nil {
		return models.Identity{}, err
	}

	identity := models.Identity{UID: resp.LocalID, Email: resp.Email}
	if identity.UID == "" {
		identity.UID = uidFromToken(resp.IDToken)
	}
	if identity.UID == "" {
		return models.Identity{}, NewAuthError(CodeNetworkFailure, errors.New("sign-in response carries no user id"))
	}

	p.mu.Lock()
	p.identity = &identity
	p.idToken = resp.IDToken
	p.refreshToken = resp.RefreshToken
	p.expiresAt = tokenExpiry(resp.IDToken, resp.ExpiresIn)
	p.mu.Unlock()

	p.log.Info().Str("uid", identity.UID).Msg("signed in")
	p.emit(&identity)
	return identity, nil
}

func (p *firebaseIdentityProvider) SignOut(context.Context) error {
	p.mu.Lock()
	wasSignedIn := p.identity != nil
	p.identity = nil
	p.idToken = ""
	p.refreshToken = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()

	if wasSignedIn {
		p.log.Info().Msg("signed out")
		p.emit(nil)
	}
	return nil
}

func (p *firebaseIdentityProvider) Identity() *models.Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.identity == nil {
		return nil
	}
	identity := *p.identity
	return &identity
}

func (p *firebaseIdentityProvider) Changes() <-chan *models.Identity {
	return p.changes
}

// IDToken implements [IdentityProvider] and [store.TokenSource]. The token
// is exchanged via the refresh grant when it is within refreshSkew of
// expiry, mirroring what the Firebase SDK does transparently.
func (p *firebaseIdentityProvider) IDToken(ctx context.Context) (string, error) {
	p.mu.RLock()
	token, refresh := p.idToken, p.refreshToken
	fresh := p.identity != nil && time.Until(p.expiresAt) > refreshSkew
	p.mu.RUnlock()

	if token == "" {
		return "", ErrNotSignedIn
	}
	if fresh {
		return token, nil
	}
	return p.refreshIDToken(ctx, refresh)
}

func (p *firebaseIdentityProvider) refreshIDToken(ctx context.Context, refreshToken string) (string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetQueryParam("key", p.apiKey).
		Post(p.tokenURL)
	if err != nil {
		return "", NewAuthError(CodeNetworkFailure, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", NewAuthError(errorCode(resp.Body()), nil)
	}

	var body struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return "", NewAuthError(CodeNetworkFailure, fmt.Errorf("decode refresh response: %w", err))
	}

	p.mu.Lock()
	p.idToken = body.IDToken
	if body.RefreshToken != "" {
		p.refreshToken = body.RefreshToken
	}
	p.expiresAt = tokenExpiry(body.IDToken, body.ExpiresIn)
	p.mu.Unlock()

	return body.IDToken, nil
}

func (p *firebaseIdentityProvider) accountsCall(ctx context.Context, action, email, password string) (authResponse, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", p.apiKey).
		SetBody(map[string]any{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		Post(p.authURL + "/accounts:" + action)
	if err != nil {
		return authResponse{}, NewAuthError(CodeNetworkFailure, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return authResponse{}, NewAuthError(errorCode(resp.Body()), nil)
	}

	var body authResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return authResponse{}, NewAuthError(CodeNetworkFailure, fmt.Errorf("decode %s response: %w", action, err))
	}
	return body, nil
}

// emit pushes a transition onto the change stream without ever blocking the
// caller: when the consumer lags, the oldest pending transition is dropped
// in favor of the newer one.
func (p *firebaseIdentityProvider) emit(identity *models.Identity) {
	for {
		select {
		case p.changes <- identity:
			return
		default:
			select {
			case <-p.changes:
			default:
			}
		}
	}
}

// errorCode extracts the provider code from an Identity Toolkit error body:
// {"error": {"message": "EMAIL_NOT_FOUND", ...}}.
func errorCode(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Message == "" {
		return CodeNetworkFailure
	}
	return payload.Error.Message
}

// uidFromToken falls back to the ID token claims when the response body
// carries no localId. The token arrived over TLS from the issuer, so an
// unverified parse is acceptable here.
func uidFromToken(idToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		return uid
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// tokenExpiry prefers the exp claim of the token itself and falls back to
// the expiresIn duration reported alongside it.
func tokenExpiry(idToken, expiresIn string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if secs, err := strconv.Atoi(expiresIn); err == nil && secs > 0 {
		return time.Now().Add(time.Duration(secs) * time.Second)
	}
	return time.Now().Add(time.Hour)
}
