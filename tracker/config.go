package tracker

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("tracker: invalid config")

// Mode selects the transport.
type Mode string

const (
	ModeUDP       Mode = "udp"
	ModeWebSocket Mode = "websocket"
)

// EnvPrefix prefixes environment overrides, e.g. XRBRIDGE_TRACKER_PORT.
const EnvPrefix = "XRBRIDGE"

const (
	keyMode           = "tracker.mode"
	keyHost           = "tracker.host"
	keyPort           = "tracker.port"
	keyPath           = "tracker.path"
	keyScreenWidth    = "tracker.screen_width"
	keyScreenSizeInch = "tracker.screen_size_inch"
	keyRatioX         = "tracker.ratio_x"
	keyRatioY         = "tracker.ratio_y"
	keySendQueue      = "tracker.send_queue"
	keyAppName        = "tracker.app_name"
)

// Config configures a Client.
type Config struct {
	Mode Mode   `toml:"mode"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// Path is the websocket request path.
	Path string `toml:"path"`

	// ScreenWidth is the local screen width in meters. Zero derives it from
	// ScreenSizeInch and the ratio.
	ScreenWidth    float64 `toml:"screen_width"`
	ScreenSizeInch float64 `toml:"screen_size_inch"`
	RatioX         float64 `toml:"ratio_x"`
	RatioY         float64 `toml:"ratio_y"`

	// SendQueue bounds the websocket send queue.
	SendQueue int    `toml:"send_queue"`
	AppName   string `toml:"app_name"`
}

// DefaultConfig returns a UDP config on DefaultPort for a 24 inch 16:9
// screen.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeUDP,
		Host:           "127.0.0.1",
		Port:           DefaultPort,
		Path:           "/",
		ScreenSizeInch: DefaultScreen.SizeInch,
		RatioX:         DefaultScreen.RatioX,
		RatioY:         DefaultScreen.RatioY,
		SendQueue:      defaultSendQueue,
		AppName:        "xrinput",
	}
}

// LoadConfig reads the tracker.* keys from v, with XRBRIDGE_* environment
// overrides. Unset keys keep DefaultConfig values.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	def := DefaultConfig()
	v.SetDefault(keyMode, string(def.Mode))
	v.SetDefault(keyHost, def.Host)
	v.SetDefault(keyPort, def.Port)
	v.SetDefault(keyPath, def.Path)
	v.SetDefault(keyScreenWidth, def.ScreenWidth)
	v.SetDefault(keyScreenSizeInch, def.ScreenSizeInch)
	v.SetDefault(keyRatioX, def.RatioX)
	v.SetDefault(keyRatioY, def.RatioY)
	v.SetDefault(keySendQueue, def.SendQueue)
	v.SetDefault(keyAppName, def.AppName)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Mode:           Mode(strings.ToLower(v.GetString(keyMode))),
		Host:           v.GetString(keyHost),
		Port:           v.GetInt(keyPort),
		Path:           v.GetString(keyPath),
		ScreenWidth:    v.GetFloat64(keyScreenWidth),
		ScreenSizeInch: v.GetFloat64(keyScreenSizeInch),
		RatioX:         v.GetFloat64(keyRatioX),
		RatioY:         v.GetFloat64(keyRatioY),
		SendQueue:      v.GetInt(keySendQueue),
		AppName:        v.GetString(keyAppName),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Mode != ModeUDP && c.Mode != ModeWebSocket:
		return fmt.Errorf("%w: mode %q", ErrInvalidConfig, c.Mode)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	case c.ScreenWidth < 0:
		return fmt.Errorf("%w: screen width %g", ErrInvalidConfig, c.ScreenWidth)
	case c.ScreenWidth == 0 && c.Screen().Width() <= 0:
		return fmt.Errorf("%w: screen %g inch %g:%g", ErrInvalidConfig, c.ScreenSizeInch, c.RatioX, c.RatioY)
	case c.SendQueue <= 0:
		return fmt.Errorf("%w: send queue %d", ErrInvalidConfig, c.SendQueue)
	}
	return nil
}

// Screen returns the configured virtual screen.
func (c Config) Screen() VirtualScreen {
	return VirtualScreen{SizeInch: c.ScreenSizeInch, RatioX: c.RatioX, RatioY: c.RatioY}
}

// LocalScreenWidth is the width, in meters, samples are normalized to.
func (c Config) LocalScreenWidth() float64 {
	if c.ScreenWidth > 0 {
		return c.ScreenWidth
	}
	return c.Screen().Width()
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL returns the websocket URL.
func (c Config) URL() string {
	p := c.Path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "ws", Host: c.Addr(), Path: p}
	return u.String()
}
