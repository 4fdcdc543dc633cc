package security

import (
	"errors"
	"time"

	"lmsplatform/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
}

type claims struct {
	Role string `json:"role,omitempty"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Generate issues an access token carrying the role and a refresh token
// carrying only the subject.
func (m *TokenManager) Generate(id domain.Identity) (string, string, error) {
	now := m.now()

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(id.Role),
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
		},
	})
	accessToken, err := at.SignedString(m.accessSecret)
	if err != nil {
		return "", "", err
	}

	rt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
		},
	})
	refreshToken, err := rt.SignedString(m.refreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (m *TokenManager) ValidateAccessToken(tokenStr string) (domain.Identity, error) {
	c, err := m.validate(tokenStr, m.accessSecret, "access")
	if err != nil {
		return domain.Identity{}, err
	}
	role := domain.Role(c.Role)
	if !role.Valid() {
		return domain.Identity{}, ErrInvalidToken
	}
	uid, err := uuid.Parse(c.Subject)
	if err != nil {
		return domain.Identity{}, ErrInvalidToken
	}
	return domain.Identity{UserID: uid, Role: role}, nil
}

func (m *TokenManager) ValidateRefreshToken(tokenStr string) (uuid.UUID, error) {
	c, err := m.validate(tokenStr, m.refreshSecret, "refresh")
	if err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return uid, nil
}

func (m *TokenManager) validate(tokenStr string, secret []byte, kind string) (*claims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || c.Type != kind {
		return nil, ErrInvalidToken
	}
	return &c, nil
}
