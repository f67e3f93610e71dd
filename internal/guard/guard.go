// Package guard gates navigation by session role. The decision is a pure
// function over (path, cookie); the middleware only applies its outcome.
package guard

import (
	"net/http"

	"etiket-museum/internal/logger"
	"etiket-museum/internal/routes"
	"etiket-museum/internal/session"
)

type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectHome
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decide classifies one navigation. Missing or undecodable tokens on a
// protected path go to /login; a decoded token with the wrong role goes
// to /. Public paths always pass, with claims populated when decodable.
func Decide(path, rawToken string, store *session.Store) (Outcome, *session.Claims) {
	required := routes.RequiredRole(path)

	if rawToken == "" {
		if required != "" {
			return RedirectLogin, nil
		}
		return Allow, nil
	}

	claims, err := store.Decode(rawToken)
	if err != nil {
		if required != "" {
			return RedirectLogin, nil
		}
		// A stale cookie on a public page is treated as anonymous.
		return Allow, nil
	}

	if required != "" && claims.Role != required {
		return RedirectHome, claims
	}
	return Allow, claims
}

// Middleware applies Decide to every request and stores the decoded claims
// in the request context for downstream handlers.
func Middleware(store *session.Store, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome, claims := Decide(r.URL.Path, session.Token(r), store)

			switch outcome {
			case RedirectLogin:
				log.Warn("GUARD", "unauthenticated access to "+r.URL.Path)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			case RedirectHome:
				log.Warn("GUARD", "role mismatch on "+r.URL.Path)
				http.Redirect(w, r, homePath, http.StatusFound)
				return
			}

			if claims != nil {
				r = r.WithContext(session.WithClaims(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}
