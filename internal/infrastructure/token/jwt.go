package token

import (
	"time"

	"link-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds JWT generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// backendClaims represents the JWT claims for downstream services.
type backendClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer generates signed backend tokens. Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// IssueBackendToken generates a signed HS256 token carrying the resolved
// role. The subject is an opaque credential key, never a raw fragment.
func (j *JWTIssuer) IssueBackendToken(subject string, role domain.Role) (string, error) {
	if j.cfg.Secret == "" {
		return "", domain.ErrTokenGeneration
	}

	now := time.Now()
	claims := backendClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.Secret))
}
