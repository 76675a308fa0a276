package httpcache

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// WithJWTSubject extends an identifier function with the sub claim of a
// Bearer token, so per-user responses are cached per user rather than
// shared across them.
//
// The token is parsed without signature verification: the subject is
// used purely to partition the cache, never to authenticate. Requests
// without a parseable token fall into the shared (anonymous) partition.
func WithJWTSubject(next IdentifierFunc) IdentifierFunc {
	parser := jwt.NewParser()

	return func(r *http.Request) string {
		id := next(r)

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			return id
		}

		token, _, err := parser.ParseUnverified(strings.TrimPrefix(auth, bearerPrefix), jwt.MapClaims{})
		if err != nil {
			return id
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			return id
		}

		return id + "|sub=" + sub
	}
}
