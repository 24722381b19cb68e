// Package factory provides a small generic registry used to instantiate
// modules from configuration. A module is described by a type string and a
// map of raw settings; factories decode the settings into typed structs and
// return the concrete implementation.
//
//	reg := factory.NewRegistry[model.Loader]("loader")
//	reg.Register("files", func(conf map[string]any) (model.Loader, error) {
//	    var c struct{ Root string `json:"root"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return network.NewFileLoader(c.Root, ""), nil
//	})
//	l, err := reg.Create(factory.ModuleConfig{Type: "files", Conf: map[string]any{"root": "."}})
package factory
