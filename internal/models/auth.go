package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating an agent by id.
type LoginRequest struct {
	ID       int64  `json:"id" validate:"required,gt=0"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// JWTClaims is the token payload: agent id as subject plus the role and
// job function used by route guards.
type JWTClaims struct {
	AgentID  int64  `json:"agent_id"`
	Role     string `json:"role"`
	Function string `json:"function"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Job functions and roles with access to the reporting endpoints.
const (
	RoleAdmin           = "admin"
	FunctionServiceHead = "Chef de service"
)

// CanViewReports reports whether the authenticated agent may read the
// reporting endpoints.
func (c JWTClaims) CanViewReports() bool {
	return c.Role == RoleAdmin || c.Function == FunctionServiceHead
}
