package audiostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarsJung/StillMind/internal/pkg/env"
)

func TestLoadConfigDisabledByDefault(t *testing.T) {
	env.Env = map[string]string{}

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, config.IsEnabled())
}

func TestLoadConfigEnabledRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing access key", env: map[string]string{
			"S3_AUDIO_ENABLED": "true", "S3_SECRET_ACCESS_KEY": "sk", "S3_BUCKET_NAME": "audio",
		}},
		{name: "missing secret", env: map[string]string{
			"S3_AUDIO_ENABLED": "true", "S3_ACCESS_KEY_ID": "ak", "S3_BUCKET_NAME": "audio",
		}},
		{name: "missing bucket", env: map[string]string{
			"S3_AUDIO_ENABLED": "true", "S3_ACCESS_KEY_ID": "ak", "S3_SECRET_ACCESS_KEY": "sk",
		}},
	}

	for _, tt := range tests {
		env.Env = tt.env
		if _, err := LoadConfig(); err == nil {
			t.Fatalf("%s: expected config error", tt.name)
		}
	}

	env.Env = map[string]string{
		"S3_AUDIO_ENABLED":     "true",
		"S3_ACCESS_KEY_ID":     "ak",
		"S3_SECRET_ACCESS_KEY": "sk",
		"S3_BUCKET_NAME":       "audio",
	}
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, config.IsEnabled())
	assert.Equal(t, "audio", config.GetBucketName())
}

func TestGetObjectKey(t *testing.T) {
	c := &Config{}
	assert.Equal(t, "audio/0b9545c2-8b01-4f70-a226-3d3b3f0e2a6f.mp3", c.GetObjectKey("0b9545c2-8b01-4f70-a226-3d3b3f0e2a6f"))
}
