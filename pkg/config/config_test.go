package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 33.0, cfg.Results.PassPercentage)
	assert.Equal(t, 1, cfg.Results.MaxFailSubjects)
	assert.False(t, cfg.Results.CacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.Results.CacheTTL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestFromViperEnvironmentOverrides(t *testing.T) {
	t.Setenv("RESULTS_PASS_PERCENTAGE", "40")
	t.Setenv("RESULTS_CACHE_TTL", "bogus")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_AUDIENCE", "dashboard")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, 40.0, cfg.Results.PassPercentage)
	assert.Equal(t, 15*time.Minute, cfg.Results.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"dashboard"}, cfg.JWT.Audience)
}
