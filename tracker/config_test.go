package tracker

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "127.0.0.1:9898", cfg.Addr())
	assert.InDelta(t, DefaultScreen.Width(), cfg.LocalScreenWidth(), 1e-12)
}

func TestLoadConfigNilViper(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, ModeUDP, cfg.Mode)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("XRBRIDGE_TRACKER_PORT", "7000")

	v := viper.New()
	v.Set("tracker.mode", "WebSocket")
	v.Set("tracker.host", "bridge.local")
	v.Set("tracker.path", "pose")
	v.Set("tracker.screen_width", 0.6)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ModeWebSocket, cfg.Mode)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "ws://bridge.local:7000/pose", cfg.URL())
	assert.Equal(t, 0.6, cfg.LocalScreenWidth())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "serial" }},
		{"port", func(c *Config) { c.Port = 70000 }},
		{"negative width", func(c *Config) { c.ScreenWidth = -1 }},
		{"degenerate screen", func(c *Config) { c.RatioX, c.RatioY = 0, 0 }},
		{"queue", func(c *Config) { c.SendQueue = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	v := viper.New()
	v.Set("tracker.send_queue", -3)
	_, err := LoadConfig(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestVirtualScreen(t *testing.T) {
	tests := []struct {
		name          string
		screen        VirtualScreen
		width, height float64
	}{
		{"3:4 five inch", VirtualScreen{SizeInch: 5, RatioX: 3, RatioY: 4}, 0.0762, 0.1016},
		{"24 inch 16:9", DefaultScreen, 0.5313124, 0.2988633},
		{"27 inch 16:9", VirtualScreen{SizeInch: Screen27, RatioX: 16, RatioY: 9}, 0.5977265, 0.3362212},
		{"degenerate", VirtualScreen{SizeInch: 24}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.width, tt.screen.Width(), 1e-6)
			assert.InDelta(t, tt.height, tt.screen.Height(), 1e-6)
		})
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.received()
		m.dropped(dropSize)
		m.sent("PenShakeCommand")
		m.sendFailed("PenShakeCommand")
		m.subscriberPanic()
		m.setFactor(2)
		m.setActive(true)
	})
}
