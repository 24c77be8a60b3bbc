package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoomTokenService issues and verifies HMAC-signed invite tokens for
// private rooms. A token binds a user to one room code for a limited time.
type RoomTokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// RoomClaims is the JWT claim set carried by an invite token.
type RoomClaims struct {
	Room string `json:"room"`
	jwt.RegisteredClaims
}

// NewRoomTokenService constructs a token service. TTL of zero defaults to
// one hour.
func NewRoomTokenService(secret, issuer string, ttl time.Duration) *RoomTokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RoomTokenService{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// IssueToken signs an invite for the given user and room code.
func (s *RoomTokenService) IssueToken(userID, roomCode string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("room token config is incomplete")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if roomCode == "" {
		return "", fmt.Errorf("room code is required")
	}

	now := time.Now()
	claims := RoomClaims{
		Room: roomCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates an invite token, returning its claims.
func (s *RoomTokenService) VerifyToken(token string) (*RoomClaims, error) {
	if s == nil || len(s.secret) == 0 {
		return nil, fmt.Errorf("room token config is incomplete")
	}

	claims := &RoomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("invalid room token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid room token")
	}
	return claims, nil
}
