package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

// AccessTokenPayload is what the identity service puts into a seller access token.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	SellerID *uuid.UUID
	Role     enums.MemberRole
	JTI      string
}

// AccessTokenClaims is the typed JWT accepted by the dashboard API.
type AccessTokenClaims struct {
	UserID   uuid.UUID        `json:"user_id"`
	SellerID *uuid.UUID       `json:"seller_id,omitempty"`
	Role     enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
