package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "Memory")
		t.Setenv("INTERVIEW_QUOTA", "not-a-number")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.StoreDriver)
		assert.Equal(t, 3, cfg.InterviewQuota)
		assert.Equal(t, "interview-events", cfg.KafkaTopic)
	})

	t.Run("lists are trimmed", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, []string{"https://a.example"}, cfg.CORSAllowedOrigins)
	})

	t.Run("non-positive limits fall back to defaults", func(t *testing.T) {
		tests := []struct {
			key  string
			val  string
			read func(*Config) int
			want int
		}{
			{"RATE_LIMIT_GLOBAL_THRESHOLD", "0", func(c *Config) int { return c.RateLimitGlobalThreshold }, 100},
			{"RATE_LIMIT_WINDOW_SECONDS", "-5", func(c *Config) int { return c.RateLimitWindowSeconds }, 60},
			{"MAX_CONCURRENT_REQUESTS", "0", func(c *Config) int { return c.MaxConcurrentRequests }, 200},
			{"REQUEST_TIMEOUT_SECONDS", "-1", func(c *Config) int { return c.RequestTimeoutSeconds }, 15},
			{"INTERVIEW_QUOTA", "0", func(c *Config) int { return c.InterviewQuota }, 3},
			{"RATE_LIMIT_GLOBAL_THRESHOLD", "7", func(c *Config) int { return c.RateLimitGlobalThreshold }, 7},
		}

		for _, tt := range tests {
			t.Run(tt.key+"="+tt.val, func(t *testing.T) {
				t.Setenv(tt.key, tt.val)

				cfg, err := LoadConfig()
				require.NoError(t, err)
				assert.Equal(t, tt.want, tt.read(cfg))
			})
		}
	})
}
