package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenCookie = "token"
	RoleCookie  = "role"

	RoleAdmin = "ADMIN"
	RoleBuyer = "BUYER"
)

var ErrNoSession = errors.New("no session token")

// Claims are the fields this service reads out of the session JWT.
// The backend issues the token; the user id arrives as either "id" or
// "userId" depending on the login path.
type Claims struct {
	UserID   int
	FullName string
	Email    string
	Role     string
}

// Store decodes session cookies for every component that needs the current
// user, so cookie handling lives in one place instead of per page.
type Store struct {
	// Secret, when set, turns on HMAC signature verification. Empty means
	// the token is decoded unverified, which trusts the client's claims.
	Secret string
	MaxAge time.Duration
}

func NewStore(secret string, maxAge time.Duration) *Store {
	return &Store{Secret: secret, MaxAge: maxAge}
}

// Decode parses the raw JWT into Claims. With no secret configured the
// signature is not checked.
func (s *Store) Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrNoSession
	}

	var mapClaims jwt.MapClaims

	if s.Secret == "" {
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err != nil {
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
		var ok bool
		mapClaims, ok = token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
	} else {
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.Secret), nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to verify token: %w", err)
		}
		var ok bool
		mapClaims, ok = token.Claims.(jwt.MapClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
	}

	return claimsFromMap(mapClaims)
}

// FromRequest reads the token cookie and decodes it. A missing cookie
// returns ErrNoSession.
func (s *Store) FromRequest(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return s.Decode(cookie.Value)
}

// Token returns the raw session token from the request, or "".
func Token(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set writes the token and role cookies, mirroring what the login and
// OAuth callback pages store.
func (s *Store) Set(w http.ResponseWriter, token, role string) {
	maxAge := int(s.MaxAge.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookie,
		Value:    strings.ToUpper(role),
		Path:     "/",
		MaxAge:   maxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookies. Used at logout and whenever the
// backend answers 401.
func (s *Store) Clear(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, RoleCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
}

func claimsFromMap(m jwt.MapClaims) (*Claims, error) {
	claims := &Claims{}

	if role, ok := m["role"].(string); ok {
		claims.Role = strings.ToUpper(role)
	}
	if name, ok := m["fullName"].(string); ok {
		claims.FullName = name
	}
	if email, ok := m["email"].(string); ok {
		claims.Email = email
	}

	id, ok := numericClaim(m, "id")
	if !ok {
		id, ok = numericClaim(m, "userId")
	}
	if !ok {
		return nil, errors.New("user id claim not found in token")
	}
	claims.UserID = id

	return claims, nil
}

func numericClaim(m jwt.MapClaims, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
