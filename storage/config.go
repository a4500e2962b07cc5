package storage

import (
	"fmt"

	"github.com/CraigFe/tezos/config/encoding"
	"github.com/CraigFe/tezos/logging"
)

const (
	namedLogger = "storage"

	goLevelDB = "GOLevelDB"
	memDB     = "memory"

	dbName = "context"
)

type Config struct {
	Level   encoding.LogLevel `choice:"debug" choice:"info" choice:"warning" choice:"error" description:"Logging level (default: info)" long:"log-level"`
	Storage string            `choice:"GOLevelDB" choice:"memory" description:"Storage type to use" long:"storage"`
	DBPath  string            `description:"Path to the context database" long:"db-path"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:   encoding.LogLevel{Level: logging.InfoLevel},
		Storage: goLevelDB,
	}
}

func NewTestConfig() Config {
	cfg := NewDefaultConfig()
	cfg.Storage = memDB
	return cfg
}

func (c *Config) validate() error {
	switch c.Storage {
	case memDB:
		return nil
	case goLevelDB:
		if c.DBPath == "" {
			return fmt.Errorf("storage type %q requires a db path", c.Storage)
		}
		return nil
	}
	return fmt.Errorf("invalid storage type %q", c.Storage)
}
