package network

import (
	"github.com/kilianp07/infrasavings/core/factory"
	"github.com/kilianp07/infrasavings/core/model"
)

var loaderRegistry = factory.NewRegistry[model.Loader]("loader")

// init registers the built-in network loaders.
func init() {
	_ = loaderRegistry.Register("files", func(conf map[string]any) (model.Loader, error) {
		var c struct {
			Root    string `json:"root"`
			Pattern string `json:"pattern"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Root == "" {
			c.Root = "."
		}
		return NewFileLoader(c.Root, c.Pattern), nil
	})

	_ = loaderRegistry.Register("sqlite", func(conf map[string]any) (model.Loader, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			c.Path = "networks.db"
		}
		s, err := NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	})

	_ = loaderRegistry.Register("memory", func(map[string]any) (model.Loader, error) {
		return NewMemoryStore(), nil
	})
}

// RegisterLoader adds a loader factory identified by name.
func RegisterLoader(name string, f factory.Factory[model.Loader]) error {
	return loaderRegistry.Register(name, f)
}

// NewLoader builds the loader described by cfg. An empty type selects the
// file loader.
func NewLoader(cfg factory.ModuleConfig) (model.Loader, error) {
	if cfg.Type == "" {
		cfg.Type = "files"
	}
	return loaderRegistry.Create(cfg)
}
