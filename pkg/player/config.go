package player

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/oledvideo/pkg/asset"
	"github.com/robotalks/oledvideo/pkg/display/websocket"
	"github.com/robotalks/oledvideo/pkg/display/window"
	"github.com/robotalks/oledvideo/pkg/pump"
)

// Display kinds.
const (
	DisplayTerm      = "term"
	DisplayWindow    = "window"
	DisplayMQTT      = "mqtt"
	DisplayWebSocket = "ws"
	DisplayNone      = "none"
)

// Config defines the configurations for the player.
type Config struct {
	FPS   int    `yaml:"fps"`
	Asset string `yaml:"asset"`
	// Displays lists the display kinds frames are rendered on.
	Displays []string `yaml:"displays"`

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string `yaml:"mqtt_url"`
	MQTTTopic     string `yaml:"mqtt_topic,omitempty"`
	WebSocketAddr string `yaml:"ws_addr"`
	TermColors    bool   `yaml:"term_colors"`
	WindowScale   int    `yaml:"window_scale"`
}

var defaultConfig = Config{
	FPS:           pump.DefaultFPS,
	Asset:         asset.DemoName,
	Displays:      []string{DisplayTerm},
	MQTTBrokerURL: "mqtt://localhost:1883/",
	WebSocketAddr: websocket.DefaultAddr,
	TermColors:    true,
	WindowScale:   window.DefaultScale,
}

var configFile string

func init() {
	if val := os.Getenv("OLEDVIDEO_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

type listValue struct {
	list *[]string
}

func (v listValue) String() string {
	if v.list == nil {
		return ""
	}
	return strings.Join(*v.list, ",")
}

func (v listValue) Set(s string) error {
	*v.list = splitList(s)
	return nil
}

func splitList(s string) (items []string) {
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.FPS, "fps", defaultConfig.FPS, "Target frame rate.")
	flag.StringVar(&defaultConfig.Asset, "asset", defaultConfig.Asset, "Encoded stream file (.rle or .rle.zst), \"demo\" for the embedded one.")
	flag.Var(listValue{&defaultConfig.Displays}, "display", "Comma separated displays: term, window, mqtt, ws, none.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL.")
	flag.StringVar(&defaultConfig.MQTTTopic, "mqtt-topic", defaultConfig.MQTTTopic, "MQTT topic for frames, defaults to oledvideo/<machine>.")
	flag.StringVar(&defaultConfig.WebSocketAddr, "ws-addr", defaultConfig.WebSocketAddr, "Listening address of the websocket viewer.")
	flag.BoolVar(&defaultConfig.TermColors, "colors", defaultConfig.TermColors, "Use colors on the terminal display.")
	flag.IntVar(&defaultConfig.WindowScale, "scale", defaultConfig.WindowScale, "Window size multiplier.")
	flag.StringVar(&configFile, "config", configFile, "YAML config file, overrides flags.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
// When a config file is specified by flag, it's loaded over the defaults.
func NewConfig() (*Config, error) {
	conf := defaultConfig
	conf.Displays = append([]string(nil), defaultConfig.Displays...)
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// MustNewConfig creates a config and fails on error.
func MustNewConfig() *Config {
	conf, err := NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return conf
}

// LoadFile decodes a YAML file into the config. Keys absent in the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %v", path, err)
	}
	return nil
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 1000 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if len(c.Displays) == 0 {
		return fmt.Errorf("at least one display is required")
	}
	for _, kind := range c.Displays {
		switch kind {
		case DisplayTerm, DisplayWindow, DisplayMQTT, DisplayWebSocket, DisplayNone:
		default:
			return fmt.Errorf("unknown display %q", kind)
		}
	}
	return nil
}
