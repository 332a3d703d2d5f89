package config

import (
	"os"
	"sync"
	"time"
)

// RoomConfig holds the credentials used to sign room-access tokens for the
// real-time platform, plus the public URL handed back to clients.
type RoomConfig struct {
	URL       string
	APIKey    string
	APISecret string
	AgentName string
	TokenTTL  time.Duration
}

var (
	roomConfig *RoomConfig
	roomOnce   sync.Once
)

func LoadRoomConfig() *RoomConfig {
	roomOnce.Do(func() {
		agentName := os.Getenv("ROOM_AGENT_NAME")
		if agentName == "" {
			agentName = "interview-agent"
		}
		ttl := 2 * time.Hour
		if raw := os.Getenv("ROOM_TOKEN_TTL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				ttl = parsed
			}
		}
		roomConfig = &RoomConfig{
			URL:       os.Getenv("ROOM_URL"),
			APIKey:    os.Getenv("ROOM_API_KEY"),
			APISecret: os.Getenv("ROOM_API_SECRET"),
			AgentName: agentName,
			TokenTTL:  ttl,
		}
	})
	return roomConfig
}
