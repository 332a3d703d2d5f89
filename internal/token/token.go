// Package token issues HS256 room-access tokens for the real-time platform.
package token

import (
	"fmt"
	"time"

	"github.com/fadilmartias/interview-agent/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// VideoGrants mirrors the grant block the room platform expects.
type VideoGrants struct {
	RoomJoin     bool   `json:"roomJoin"`
	Room         string `json:"room"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
}

type Claims struct {
	jwt.RegisteredClaims
	Video    VideoGrants `json:"video"`
	Metadata string      `json:"metadata,omitempty"`
}

// Generate signs a join token for identity in room. Metadata travels inside
// the token so the agent dispatched to the room can read candidate details.
func Generate(cfg *config.RoomConfig, identity, room, metadata string) (string, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return "", fmt.Errorf("room API key/secret not configured")
	}
	if identity == "" || room == "" {
		return "", fmt.Errorf("identity and room are required")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.APIKey,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
		Video: VideoGrants{
			RoomJoin:     true,
			Room:         room,
			CanPublish:   true,
			CanSubscribe: true,
		},
		Metadata: metadata,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.APISecret))
}

// Parse validates a token and returns its claims. Used by tests and by the
// websocket join path when a client presents its token.
func Parse(cfg *config.RoomConfig, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.APISecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}
