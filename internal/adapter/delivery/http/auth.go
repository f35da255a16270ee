package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// TokenVerifier is the contract the delivery layer expects from the auth
// collaborator: it turns a bearer token into a principal identifier. Token
// mechanics (signing, expiry, revocation) live entirely behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type principalCtxKey struct{}

// principalFromContext returns the authenticated principal, or an empty
// string for anonymous requests.
func principalFromContext(ctx context.Context) string {
	principal, _ := ctx.Value(principalCtxKey{}).(string)
	return principal
}

// withPrincipal resolves the Authorization header into a principal and stores
// it in the request context. Requests without credentials proceed as
// anonymous; ownership checks downstream decide what anonymous may touch.
func withPrincipal(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, newErrorResponse("invalid authorization header"))
				return
			}

			principal, err := verifier.Verify(r.Context(), token)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, newErrorResponse("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
