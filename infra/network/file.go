package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/infrasavings/core/model"
)

// DefaultPattern is the path of an exported network relative to the results
// root. Placeholders are replaced with the fields of the network key.
const DefaultPattern = "results/{scenario}/postnetworks/elec_s_{clusters}_l{lineex}__{sector_opts}_{horizon}.json"

// FileLoader reads exported networks from a directory tree.
type FileLoader struct {
	root    string
	pattern string
}

// NewFileLoader creates a loader rooted at root. An empty pattern selects
// DefaultPattern.
func NewFileLoader(root, pattern string) *FileLoader {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &FileLoader{root: root, pattern: pattern}
}

// Path returns the file path for key.
func (f *FileLoader) Path(key model.NetworkKey) string {
	r := strings.NewReplacer(
		"{scenario}", key.Scenario,
		"{clusters}", key.Clusters,
		"{lineex}", key.LineLimit,
		"{sector_opts}", key.SectorOpts,
		"{horizon}", key.Horizon,
	)
	return filepath.Join(f.root, filepath.FromSlash(r.Replace(f.pattern)))
}

// Load reads the network for key. A missing file yields (nil, nil).
func (f *FileLoader) Load(ctx context.Context, key model.NetworkKey) (*model.NetworkResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := f.Path(key)
	n, err := ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.Key = key
	return n, nil
}

// ReadFile decodes a network export. The format is chosen by extension:
// .json, .yaml or .yml.
func ReadFile(path string) (*model.NetworkResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	n, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return n, nil
}

// Decode parses a network export in the format named by ext.
func Decode(data []byte, ext string) (*model.NetworkResult, error) {
	var n model.NetworkResult
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported network format: %s", ext)
	}
	return &n, nil
}
