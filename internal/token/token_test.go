package token

import (
	"testing"
	"time"

	"github.com/fadilmartias/interview-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoomConfig() *config.RoomConfig {
	return &config.RoomConfig{
		URL:       "wss://rooms.example.com",
		APIKey:    "api-key",
		APISecret: "api-secret",
		TokenTTL:  time.Hour,
	}
}

func TestGenerateAndParseRoundTrip(t *testing.T) {
	cfg := testRoomConfig()

	raw, err := Generate(cfg, "candidate-42", "interview-room-1", `{"candidate_name":"Ada"}`)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Parse(cfg, raw)
	require.NoError(t, err)
	assert.Equal(t, "candidate-42", claims.Subject)
	assert.Equal(t, "api-key", claims.Issuer)
	assert.Equal(t, "interview-room-1", claims.Video.Room)
	assert.True(t, claims.Video.RoomJoin)
	assert.True(t, claims.Video.CanPublish)
	assert.True(t, claims.Video.CanSubscribe)
	assert.Equal(t, `{"candidate_name":"Ada"}`, claims.Metadata)
}

func TestGenerateRequiresCredentials(t *testing.T) {
	cfg := testRoomConfig()
	cfg.APISecret = ""

	_, err := Generate(cfg, "id", "room", "")
	assert.Error(t, err)
}

func TestGenerateRequiresIdentityAndRoom(t *testing.T) {
	cfg := testRoomConfig()

	_, err := Generate(cfg, "", "room", "")
	assert.Error(t, err)

	_, err = Generate(cfg, "id", "", "")
	assert.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testRoomConfig()
	raw, err := Generate(cfg, "id", "room", "")
	require.NoError(t, err)

	other := testRoomConfig()
	other.APISecret = "different-secret"
	_, err = Parse(other, raw)
	assert.Error(t, err)
}

func TestTokenExpiryHonorsTTL(t *testing.T) {
	cfg := testRoomConfig()
	cfg.TokenTTL = time.Minute

	raw, err := Generate(cfg, "id", "room", "")
	require.NoError(t, err)

	claims, err := Parse(cfg, raw)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}
