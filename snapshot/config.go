package snapshot

import (
	"time"

	"github.com/CraigFe/tezos/config/encoding"
	"github.com/CraigFe/tezos/logging"
)

const namedLogger = "snapshot"

type Config struct {
	Level            encoding.LogLevel `choice:"debug" choice:"info" choice:"warning" choice:"error" description:"Logging level (default: info)" long:"log-level"`
	ProgressInterval encoding.Duration `description:"How often to log progress while streaming a snapshot, 0 disables it" long:"progress-interval"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:            encoding.LogLevel{Level: logging.InfoLevel},
		ProgressInterval: encoding.Duration{Duration: 10 * time.Second},
	}
}

func NewTestConfig() Config {
	cfg := NewDefaultConfig()
	cfg.Level = encoding.LogLevel{Level: logging.DebugLevel}
	return cfg
}
