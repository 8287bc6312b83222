package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/artlet/artlet-api/internal/pkg/jwt"
	"github.com/artlet/artlet-api/internal/pkg/response"
)

type contextKey string

const ArtistIDKey contextKey = "artist_id"

// Auth returns middleware that validates the session token and places
// the artist ID into the request context. The core only ever reads the
// artist ID; everything else about auth belongs to the session provider.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ArtistIDKey, claims.ArtistID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetArtistID extracts the artist ID from context
func GetArtistID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ArtistIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
