package dto

import "github.com/golang-jwt/jwt/v5"

// Roles recognized by the route gates. The token issuer is an external
// collaborator; this service only trusts the role it finds in the claims.
const (
	RoleStaff   = "staff"
	RoleStudent = "student"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "staff" or "student"
	jwt.RegisteredClaims
}
