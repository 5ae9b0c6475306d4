package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clinic-management/internal/platform/logger"
	"clinic-management/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	authErrKey ctxKey = "auth_error"
	stateKey   ctxKey = "auth_state"
)

// ErrInvalidToken: vino un Bearer token y el verifier lo rechazó.
var ErrInvalidToken = errors.New("invalid token")

// authState lo crea AccessLog y lo completa AuthContext, para que la línea de
// acceso vea el caller resuelto más adentro de la cadena.
type authState struct {
	userID string
	err    error
}

// AuthContext resuelve el caller del request:
// - Con verifier, un Bearer token válido setea claims. Uno inválido deja
//   ErrInvalidToken en el contexto (ver AuthError) y se loguea.
// - Sin verifier (modo dev), el header X-Debug-User-ID setea claims.
// - Sin claims el request sigue igual; los handlers decidirán si exigen auth.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"module": "auth"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					ctx = withCaller(ctx, auth.Claims{UserID: uid})
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(ctx, token)
			if err != nil {
				authErr := fmt.Errorf("%w: %v", ErrInvalidToken, err)
				log.Warn("token rejected", map[string]any{
					"request_id": chimw.GetReqID(ctx),
					"path":       r.URL.Path,
					"err":        err,
				})
				ctx = context.WithValue(ctx, authErrKey, authErr)
				if st, ok := ctx.Value(stateKey).(*authState); ok {
					st.err = authErr
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r.WithContext(withCaller(ctx, claims)))
		})
	}
}

func withCaller(ctx context.Context, claims auth.Claims) context.Context {
	if st, ok := ctx.Value(stateKey).(*authState); ok {
		st.userID = claims.UserID
	}
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// AuthError devuelve el rechazo del token, si lo hubo. nil cuando simplemente
// no vino caller.
func AuthError(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}

func bearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
