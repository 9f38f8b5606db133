package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/respond"
)

const (
	// GuestHeader identifies an anonymous browser session.
	GuestHeader = "X-Guest-Id"
	guestPrefix = "guest:"

	identityKey = "identity"
	userIDKey   = "userId"
	isGuestKey  = "isGuest"

	maxGuestIDLength = 128
)

var (
	errMissingIdentity = errors.New("Missing identity")
	errBadToken        = errors.New("missing or invalid token")
	errBadGuestID      = errors.New("invalid guest id")
)

// Identity is the caller resolved by Auth.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Guest  bool
}

// Auth resolves the caller from a bearer token or the guest header. Bearer
// tokens win when both are sent.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		id, err := resolveIdentity(c.Request, verifier)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
			return
		}
		c.Set(identityKey, id)
		c.Set(userIDKey, id.UserID)
		c.Set(isGuestKey, id.Guest)
		c.Next()
	}
}

func resolveIdentity(r *http.Request, verifier *auth.Verifier) (Identity, error) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || verifier == nil {
			return Identity{}, errBadToken
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			return Identity{}, errBadToken
		}
		return Identity{UserID: claims.Sub, Email: claims.Email, Name: claims.Name}, nil
	}

	guestID := strings.TrimSpace(r.Header.Get(GuestHeader))
	if guestID == "" {
		return Identity{}, errMissingIdentity
	}
	if !validGuestID(guestID) {
		return Identity{}, errBadGuestID
	}
	return Identity{UserID: guestPrefix + guestID, Guest: true}, nil
}

// validGuestID reuses the request ID alphabet; guest IDs end up in storage keys.
func validGuestID(id string) bool {
	return len(id) <= maxGuestIDLength && validRequestID(id)
}

// IdentityFromContext returns the caller resolved by Auth.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	if c == nil {
		return Identity{}, false
	}
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := val.(Identity)
	return id, ok
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// IsGuest reports whether the request was authenticated with the guest header.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}
