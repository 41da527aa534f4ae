// Package auth guards the pages behind a single administrator login. The
// session is an HS256 token carried in a cookie. With no password hash
// configured the guard is disabled and every request passes.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const CookieName = "medstore_session"

var ErrInvalidCredentials = errors.New("invalid username or password")

type ctxKey string

const ctxUser ctxKey = "user"

type claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Authenticator checks credentials and issues session tokens.
type Authenticator struct {
	user   string
	hash   []byte
	secret []byte
	ttl    time.Duration
}

func New(user, passwordHash, secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{user: user, hash: []byte(passwordHash), secret: []byte(secret), ttl: ttl}
}

// Enabled reports whether a password hash is configured.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.hash) > 0
}

// Login checks the credentials and returns a signed session token.
func (a *Authenticator) Login(user, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) != 1 {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(a.secret)
}

// Verify parses a session token and returns the user it was issued to.
func (a *Authenticator) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	c, ok := token.Claims.(*claims)
	if !ok || c.User != a.user {
		return "", ErrInvalidCredentials
	}
	return c.User, nil
}

// SetSession writes the session cookie.
func (a *Authenticator) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.ttl.Seconds()),
	})
}

// ClearSession expires the session cookie.
func (a *Authenticator) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", HttpOnly: true, MaxAge: -1})
}

// Middleware rejects requests without a valid session. Page requests are
// redirected to /login, JSON requests under /api get 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		cookie, err := r.Cookie(CookieName)
		if err == nil {
			if user, err := a.Verify(cookie.Value); err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUser, user)))
				return
			}
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}` + "\n"))
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

// UserFromContext returns the logged in user, or "".
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(ctxUser).(string)
	return user
}
