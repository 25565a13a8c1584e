// Package config resolves service settings from flags, environment
// variables and an optional .env file.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TEXTFORMATTER_PORT.
const EnvPrefix = "TEXTFORMATTER"

// Keys double as flag names.
const (
	KeyBind     = "bind"
	KeyPort     = "port"
	KeyHTTPAddr = "http-addr"
	KeyLogJSON  = "log-json"
	KeyLogFile  = "log-file"
	KeyWarmUp   = "warm-up"
)

// Default configuration
const (
	DefaultBind = "*"
	DefaultPort = 5555
)

// Config holds the server settings.
type Config struct {
	// Bind is the host the REP socket binds to; "*" means all interfaces.
	Bind string
	// Port is the REP socket port.
	Port int
	// HTTPAddr enables the HTTP gateway when non-empty, e.g. ":8080".
	HTTPAddr string
	// LogJSON switches logs to JSON lines.
	LogJSON bool
	// LogFile redirects logs to a file; empty means stdout.
	LogFile string
	// WarmUp exercises the formatter before the socket is bound.
	WarmUp bool
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Bind: DefaultBind,
		Port: DefaultPort,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.Bind) == "" {
		return errors.New("bind host must not be empty")
	}
	return nil
}

// RegisterFlags declares the server flags on fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyBind, d.Bind, `host to bind the socket to ("*" for all interfaces)`)
	fs.Int(KeyPort, d.Port, "port of the request/reply socket")
	fs.String(KeyHTTPAddr, d.HTTPAddr, `address of the optional HTTP gateway, e.g. ":8080" (empty disables it)`)
	fs.Bool(KeyLogJSON, d.LogJSON, "log in JSON format")
	fs.String(KeyLogFile, d.LogFile, "log file path (empty = stdout)")
	fs.Bool(KeyWarmUp, d.WarmUp, "warm up the formatter before serving")
}

// NewViper returns a viper instance bound to fs and to TEXTFORMATTER_*
// environment variables, with defaults applied.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyBind, d.Bind)
	v.SetDefault(KeyPort, d.Port)
	v.SetDefault(KeyHTTPAddr, d.HTTPAddr)
	v.SetDefault(KeyLogJSON, d.LogJSON)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyWarmUp, d.WarmUp)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, errors.Wrap(err, "bind flags")
		}
	}
	return v, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored; existing variables are never overridden.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// FromViper reads and validates a Config.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Bind:     v.GetString(KeyBind),
		Port:     v.GetInt(KeyPort),
		HTTPAddr: v.GetString(KeyHTTPAddr),
		LogJSON:  v.GetBool(KeyLogJSON),
		LogFile:  v.GetString(KeyLogFile),
		WarmUp:   v.GetBool(KeyWarmUp),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
