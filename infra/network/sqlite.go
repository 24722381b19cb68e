package network

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/infrasavings/core/model"
)

// SQLiteStore persists solved networks in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS networks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scenario TEXT NOT NULL,
    horizon TEXT NOT NULL,
    lineex TEXT NOT NULL,
    clusters TEXT NOT NULL,
    sector_opts TEXT NOT NULL,
    UNIQUE(scenario, horizon, lineex, clusters, sector_opts)
);
CREATE TABLE IF NOT EXISTS components (
    network_id INTEGER NOT NULL REFERENCES networks(id),
    component TEXT NOT NULL,
    name TEXT,
    carrier TEXT NOT NULL,
    p_nom_opt REAL,
    e_nom_opt REAL,
    efficiency REAL,
    capital_cost REAL,
    marginal_cost REAL,
    energy REAL
);
CREATE INDEX IF NOT EXISTS components_network ON components(network_id);
CREATE TABLE IF NOT EXISTS carriers (
    network_id INTEGER NOT NULL REFERENCES networks(id),
    carrier TEXT NOT NULL,
    nice_name TEXT,
    PRIMARY KEY(network_id, carrier)
);`

const keyFilter = ` WHERE scenario = ? AND horizon = ? AND lineex = ? AND clusters = ? AND sector_opts = ?`

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save stores n under key, replacing any previous network with that key.
func (s *SQLiteStore) Save(ctx context.Context, key model.NetworkKey, n *model.NetworkResult) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{
		`DELETE FROM components WHERE network_id IN (SELECT id FROM networks` + keyFilter + `)`,
		`DELETE FROM carriers WHERE network_id IN (SELECT id FROM networks` + keyFilter + `)`,
		`DELETE FROM networks` + keyFilter,
	} {
		if _, err = tx.ExecContext(ctx, q, key.Scenario, key.Horizon, key.LineLimit, key.Clusters, key.SectorOpts); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO networks (scenario, horizon, lineex, clusters, sector_opts)
        VALUES (?, ?, ?, ?, ?)`,
		key.Scenario, key.Horizon, key.LineLimit, key.Clusters, key.SectorOpts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO components
        (network_id, component, name, carrier, p_nom_opt, e_nom_opt, efficiency, capital_cost, marginal_cost, energy)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, g := range n.Generators {
		if _, err = stmt.ExecContext(ctx, id, model.ComponentGenerator, g.Name, g.Carrier, g.PNomOpt, 0, 1, g.CapitalCost, g.MarginalCost, g.Energy); err != nil {
			return err
		}
	}
	for _, l := range n.Links {
		if _, err = stmt.ExecContext(ctx, id, model.ComponentLink, l.Name, l.Carrier, l.PNomOpt, 0, l.Efficiency, l.CapitalCost, l.MarginalCost, l.Energy); err != nil {
			return err
		}
	}
	for _, st := range n.Stores {
		if _, err = stmt.ExecContext(ctx, id, model.ComponentStore, st.Name, st.Carrier, 0, st.ENomOpt, 1, st.CapitalCost, st.MarginalCost, st.Energy); err != nil {
			return err
		}
	}
	for _, su := range n.StorageUnits {
		if _, err = stmt.ExecContext(ctx, id, model.ComponentStorageUnit, su.Name, su.Carrier, su.PNomOpt, 0, 1, su.CapitalCost, su.MarginalCost, su.Energy); err != nil {
			return err
		}
	}
	for carrier, c := range n.Carriers {
		if _, err = tx.ExecContext(ctx, `INSERT INTO carriers (network_id, carrier, nice_name) VALUES (?, ?, ?)`,
			id, carrier, c.NiceName); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns the network stored under key or nil when absent.
func (s *SQLiteStore) Load(ctx context.Context, key model.NetworkKey) (*model.NetworkResult, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM networks`+keyFilter,
		key.Scenario, key.Horizon, key.LineLimit, key.Clusters, key.SectorOpts).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	n := &model.NetworkResult{Key: key}
	rows, err := s.db.QueryContext(ctx, `SELECT component, name, carrier, p_nom_opt, e_nom_opt, efficiency,
        capital_cost, marginal_cost, energy FROM components WHERE network_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var comp, name, carrier string
		var pNom, eNom, eff, capCost, margCost, energy float64
		if err := rows.Scan(&comp, &name, &carrier, &pNom, &eNom, &eff, &capCost, &margCost, &energy); err != nil {
			return nil, err
		}
		switch comp {
		case model.ComponentGenerator:
			n.Generators = append(n.Generators, model.Generator{Name: name, Carrier: carrier, PNomOpt: pNom, CapitalCost: capCost, MarginalCost: margCost, Energy: energy})
		case model.ComponentLink:
			n.Links = append(n.Links, model.Link{Name: name, Carrier: carrier, PNomOpt: pNom, Efficiency: eff, CapitalCost: capCost, MarginalCost: margCost, Energy: energy})
		case model.ComponentStore:
			n.Stores = append(n.Stores, model.Store{Name: name, Carrier: carrier, ENomOpt: eNom, CapitalCost: capCost, MarginalCost: margCost, Energy: energy})
		case model.ComponentStorageUnit:
			n.StorageUnits = append(n.StorageUnits, model.StorageUnit{Name: name, Carrier: carrier, PNomOpt: pNom, CapitalCost: capCost, MarginalCost: margCost, Energy: energy})
		default:
			return nil, fmt.Errorf("network %s: unknown component %q", key, comp)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `SELECT carrier, nice_name FROM carriers WHERE network_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = crows.Close() }()
	for crows.Next() {
		var carrier, nice string
		if err := crows.Scan(&carrier, &nice); err != nil {
			return nil, err
		}
		if n.Carriers == nil {
			n.Carriers = map[string]model.Carrier{}
		}
		n.Carriers[carrier] = model.Carrier{NiceName: nice}
	}
	return n, crows.Err()
}

// Keys lists the stored network keys.
func (s *SQLiteStore) Keys(ctx context.Context) ([]model.NetworkKey, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT scenario, horizon, lineex, clusters, sector_opts
        FROM networks ORDER BY horizon, scenario`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var keys []model.NetworkKey
	for rows.Next() {
		var k model.NetworkKey
		if err := rows.Scan(&k.Scenario, &k.Horizon, &k.LineLimit, &k.Clusters, &k.SectorOpts); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
