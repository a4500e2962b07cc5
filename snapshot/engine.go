// Package snapshot implements the context snapshot engine: a streaming
// serializer and deserializer that turns a content-addressed Merkle
// context plus a chain of block metadata into a single self-describing
// byte stream, and rebuilds it in a fresh context store on the other side.
package snapshot

import (
	"github.com/CraigFe/tezos/logging"
)

// Engine ties the exporter and importer to a context store.
type Engine struct {
	Config

	log   *logging.Logger
	store Store
}

// New returns a snapshot engine running against the given store.
func New(log *logging.Logger, cfg Config, store Store) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		Config: cfg,
		log:    log,
		store:  store,
	}
}

func (e *Engine) ReloadConfig(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.Config = cfg
}
