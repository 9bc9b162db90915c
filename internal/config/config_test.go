package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	assert.Empty(t, cfg.MapListenAddr, "map server is opt-in")
	assert.Equal(t, "native", cfg.MapTransport)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3000, cfg.NearbyRadius)
}
