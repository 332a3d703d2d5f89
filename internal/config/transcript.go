package config

import (
	"os"
	"sync"
)

// TranscriptConfig points at the backend that receives final transcripts.
// An empty URL disables delivery; sessions still complete normally.
type TranscriptConfig struct {
	APIURL string
}

var (
	transcriptConfig *TranscriptConfig
	transcriptOnce   sync.Once
)

func LoadTranscriptConfig() *TranscriptConfig {
	transcriptOnce.Do(func() {
		transcriptConfig = &TranscriptConfig{
			APIURL: os.Getenv("TRANSCRIPT_API_URL"),
		}
	})
	return transcriptConfig
}
