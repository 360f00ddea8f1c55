package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, defaultDatasetURL, cfg.Dataset.URL)
	assert.Equal(t, time.Minute, cfg.Dataset.RequestTimeout)
	assert.Equal(t, 1000, cfg.Milepost.MaxNearbyPoints)
	assert.Equal(t, 10.0, cfg.Milepost.MaxDistanceMiles)
	assert.Equal(t, 1.0, cfg.Milepost.MilepostGapThreshold)
	assert.Equal(t, 2.0, cfg.Milepost.SegmentGapThreshold)
	assert.InDelta(t, 2253.076, cfg.Milepost.SpatialProximityMeters, 1e-6)
	assert.Equal(t, 2, cfg.Milepost.MaxPointsPerLine)
	assert.Equal(t, 8000.0, cfg.Milepost.RefetchDistanceMeters)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("MILEPOST_MAX_DISTANCE_MILES", "25")
	t.Setenv("MILEPOST_MAX_POINTS_PER_LINE", "1")
	t.Setenv("SESSION_TTL", "120")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, 25.0, cfg.Milepost.MaxDistanceMiles)
	// a line needs two points to be drawn
	assert.Equal(t, 2, cfg.Milepost.MaxPointsPerLine)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
}
