package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"eballot/internal/apperror"
	"eballot/internal/models"
)

const (
	tokenIssuer   = "umak-eballot"
	tokenValidity = 12 * time.Hour
)

// Claims is the identity carried by a bearer token. Sub holds the user id.
type Claims struct {
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	InstituteID *string `json:"instituteId"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenManager signs and verifies HS256 bearer tokens against a shared
// secret. Verification failures are collapsed into a single generic
// message so callers cannot tell which check failed.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

func (m *TokenManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:       user.Email,
		Role:        user.Role,
		InstituteID: user.InstituteID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperror.Unauthenticated("Invalid or expired token")
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, apperror.Unauthenticated("Invalid or expired token")
	}
	return claims, nil
}
