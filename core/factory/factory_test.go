package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Path string
	Size int
}

type sampleConf struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]("loader")
	require.NoError(t, reg.Register("files", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{Path: c.Path, Size: c.Size}, nil
	}))
	inst, err := reg.Create(ModuleConfig{Type: "files", Conf: map[string]any{"path": "results", "size": "3"}})
	require.NoError(t, err)
	assert.Equal(t, "results", inst.Path)
	assert.Equal(t, 3, inst.Size)
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]("sink")
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("z", nil))
	_, err := reg.Create(ModuleConfig{Type: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sink type "y" (known: x)`)
	assert.Equal(t, []string{"x"}, reg.Names())
}
