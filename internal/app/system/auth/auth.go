// internal/app/system/auth/auth.go

// Package auth issues and verifies the signed bearer tokens that
// authenticate API callers and push connections, and provides the request
// middleware that loads the token's user into context.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/meethub/internal/domain/models"
	"github.com/gorilla/securecookie"
)

const tokenName = "meethub-token"

var (
	// ErrInvalidToken is returned for tokens that fail signature or
	// expiry checks.
	ErrInvalidToken = errors.New("invalid or expired auth token")

	// ErrKeyTooShort rejects signing keys that are trivially guessable.
	ErrKeyTooShort = errors.New("auth token key must be at least 32 bytes")
)

// SessionUser is what a verified token resolves to and what handlers read
// from the request context.
type SessionUser struct {
	UserID   string
	UserName string
	FullName string
	Email    string
	IsAdmin  bool
}

// TokenService encodes SessionUsers into signed, expiring bearer tokens.
// Tokens are signed and encrypted with securecookie; the key never leaves
// the server, so a token cannot be forged or inspected by clients.
type TokenService struct {
	codec *securecookie.SecureCookie
}

// NewTokenService builds a token codec from the configured key and expiry.
func NewTokenService(key string, expiry time.Duration) (*TokenService, error) {
	if len(key) < 32 {
		return nil, ErrKeyTooShort
	}
	codec := securecookie.New([]byte(key), []byte(key)[:32])
	codec.MaxAge(int(expiry.Seconds()))
	return &TokenService{codec: codec}, nil
}

// Issue signs a token for the given user.
func (s *TokenService) Issue(u models.User) (string, error) {
	su := SessionUser{
		UserID:   u.UserID,
		UserName: u.UserName,
		FullName: u.FullName(),
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
	token, err := s.codec.Encode(tokenName, su)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Decode verifies a token and returns the user it was issued to.
func (s *TokenService) Decode(token string) (*SessionUser, error) {
	var su SessionUser
	if err := s.codec.Decode(tokenName, token, &su); err != nil {
		return nil, ErrInvalidToken
	}
	return &su, nil
}

// Verify resolves a token to its user id. This is the credential-verifier
// contract the push session registry authenticates with.
func (s *TokenService) Verify(token string) (string, error) {
	su, err := s.Decode(token)
	if err != nil {
		return "", err
	}
	return su.UserID, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadTokenUser injects the user into context when the request carries a
// valid bearer token. Requests without a token, or with a bad one, continue
// anonymously; route-level middleware decides whether that is fatal.
func (s *TokenService) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if su, err := s.Decode(token); err == nil {
				r = withUser(r, su)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects anonymous requests with a 401.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with a 401 and non-admin users
// with a 403. This is the admin capability check in front of meeting
// mutations.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !u.IsAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>",
// falling back to the authToken query parameter for websocket clients that
// cannot set headers.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("authToken")
}
