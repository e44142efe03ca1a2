package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/enums"
)

// SessionClaims is the typed JWT minted by the external auth service.
type SessionClaims struct {
	UserID uuid.UUID       `json:"user_id"`
	Role   enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// Session is the explicit per-request session passed into the basket engine
// and the lifecycle authority. It replaces ad-hoc "current user" reads: the
// caller resolves it once from the bearer token and threads it through.
type Session struct {
	UserID uuid.UUID
	Role   enums.ActorRole
	Token  string
}

// Bearer returns the raw token forwarded to the marketplace backend.
func (s Session) Bearer() string {
	return s.Token
}

// IsBuyerOf reports whether the session user placed the order with buyerID.
func (s Session) IsBuyerOf(buyerID uuid.UUID) bool {
	return s.Role == enums.ActorRoleBuyer && s.UserID == buyerID
}
