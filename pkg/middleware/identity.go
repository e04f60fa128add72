package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	apperrors "tembea/pkg/errors"
	httputil "tembea/pkg/http"
	"tembea/pkg/logger"
	"tembea/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const IdentityKey contextKey = "identity"

// IdentityClaims is the token payload issued by the identity provider.
type IdentityClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Identity verifies the bearer token and stores the caller's model.Identity
// on the request context. Requests without a valid token get 401.
func Identity(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := parseIdentity(r.Header.Get("Authorization"), key)
			if err != nil {
				log.Warn("Identity verification failed",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseIdentity(header string, key []byte) (*model.Identity, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.Unauthorized("Authorization token is missing or malformed")
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("Authorization token has expired")
		}
		return nil, apperrors.Unauthorized("Authorization token is invalid")
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.Unauthorized("Authorization token is invalid")
	}

	return &model.Identity{
		UID:         claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PhotoURL:    claims.Picture,
	}, nil
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// IdentityFrom returns the authenticated caller, or nil outside the Identity middleware.
func IdentityFrom(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(IdentityKey).(*model.Identity)
	return identity
}
