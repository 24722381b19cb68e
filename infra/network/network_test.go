package network

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/infrasavings/core/factory"
	"github.com/kilianp07/infrasavings/core/model"
)

var testKey = model.NetworkKey{
	LineLimit:  "v1.15",
	Clusters:   "48",
	SectorOpts: "Co2L0.45-1H",
	Horizon:    "2030",
	Scenario:   "flexible",
}

func testNetwork() *model.NetworkResult {
	return &model.NetworkResult{
		Generators:   []model.Generator{{Name: "DE0 onwind", Carrier: model.CarrierOnwind, PNomOpt: 1200.5, CapitalCost: 1e5}},
		Links:        []model.Link{{Name: "DE0 CCGT", Carrier: model.CarrierCCGT, PNomOpt: 800, Efficiency: 0.58}},
		Stores:       []model.Store{{Name: "EU gas", Carrier: model.CarrierGas, ENomOpt: 1e6, CapitalCost: 0.02}},
		StorageUnits: []model.StorageUnit{{Name: "DE0 PHS", Carrier: "PHS", PNomOpt: 50}},
		Carriers:     map[string]model.Carrier{model.CarrierOnwind: {NiceName: "Onshore Wind"}},
	}
}

func TestFileLoader_Path(t *testing.T) {
	l := NewFileLoader("/data", "")
	want := filepath.Join("/data", "results", "flexible", "postnetworks", "elec_s_48_lv1.15__Co2L0.45-1H_2030.json")
	assert.Equal(t, want, l.Path(testKey))
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLoader(dir, "{scenario}_{horizon}.yaml")
	ctx := context.Background()

	n, err := l.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Nil(t, n, "missing file is absent, not an error")

	data := `generators:
  - name: DE0 solar
    carrier: solar
    p_nom_opt: 12345
links:
  - carrier: CCGT
    p_nom_opt: 100
    efficiency: 0.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flexible_2030.yaml"), []byte(data), 0o644))
	n, err = l.Load(ctx, testKey)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, testKey, n.Key)
	assert.Equal(t, 12345.0, n.Generators[0].PNomOpt)
	assert.Equal(t, 0.5, n.Links[0].Efficiency)
}

func TestFileLoader_Corrupt(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLoader(dir, "{scenario}.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flexible.json"), []byte("{not json"), 0o644))
	_, err := l.Load(context.Background(), testKey)
	assert.Error(t, err)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("x"), ".nc")
	assert.ErrorContains(t, err, "unsupported")
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "networks.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Nil(t, n)

	require.NoError(t, s.Save(ctx, testKey, testNetwork()))
	// Saving twice replaces the stored network.
	require.NoError(t, s.Save(ctx, testKey, testNetwork()))

	got, err := s.Load(ctx, testKey)
	require.NoError(t, err)
	require.NotNil(t, got)
	want := testNetwork()
	want.Key = testKey
	assert.Equal(t, want, got)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.NetworkKey{testKey}, keys)

	other := testKey
	other.Horizon = "2040"
	n, err = s.Load(ctx, other)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, testKey, testNetwork()))
	n, err := s.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, testKey, n.Key)
}

func TestNewLoader(t *testing.T) {
	l, err := NewLoader(factory.ModuleConfig{})
	require.NoError(t, err)
	assert.IsType(t, &FileLoader{}, l)

	l, err = NewLoader(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": filepath.Join(t.TempDir(), "n.db")}})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, l)
	_ = l.(*SQLiteStore).Close()

	_, err = NewLoader(factory.ModuleConfig{Type: "netcdf"})
	assert.Error(t, err)
}
