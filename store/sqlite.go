// Package store exports an architecture graph and its current bindings to
// a SQLite database, so that they can be inspected with plain SQL.
package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/sarchlab/fabricdb/arch"
)

// SQLiteStore holds an open export database.
type SQLiteStore struct {
	db *sql.DB
}

// Counts are the row counts of the export tables.
type Counts struct {
	Wires        int
	Pips         int
	Bels         int
	BelPins      int
	WireBindings int
	BelBindings  int
}

// Open creates or opens a SQLite database and makes sure the schema exists.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to init schema")
	}

	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS wires (
			id INTEGER PRIMARY KEY,
			name TEXT UNIQUE,
			type TEXT,
			x INTEGER,
			y INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS pips (
			id INTEGER PRIMARY KEY,
			name TEXT UNIQUE,
			type TEXT,
			src INTEGER,
			dst INTEGER,
			delay REAL,
			x INTEGER,
			y INTEGER,
			z INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS bels (
			id INTEGER PRIMARY KEY,
			name TEXT UNIQUE,
			type TEXT,
			x INTEGER,
			y INTEGER,
			z INTEGER,
			gb INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS bel_pins (
			bel INTEGER,
			pin TEXT,
			wire INTEGER,
			dir TEXT,
			PRIMARY KEY (bel, pin)
		);`,
		`CREATE TABLE IF NOT EXISTS wire_bindings (
			wire INTEGER PRIMARY KEY,
			net TEXT,
			pip INTEGER,
			strength TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS bel_bindings (
			bel INTEGER PRIMARY KEY,
			cell TEXT,
			strength TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_pips_src ON pips(src);`,
		`CREATE INDEX IF NOT EXISTS idx_pips_dst ON pips(dst);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}

	return nil
}

func clearTables(ctx context.Context, tx *sql.Tx, tables ...string) error {
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return errors.Wrapf(err, "clear %s", t)
		}
	}

	return nil
}

// SaveGraph replaces the stored graph with the one of the architecture.
func (s *SQLiteStore) SaveGraph(ctx context.Context, a *arch.Arch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx, "wires", "pips", "bels", "bel_pins"); err != nil {
		return err
	}

	if err := saveWires(ctx, tx, a); err != nil {
		return err
	}

	if err := savePips(ctx, tx, a); err != nil {
		return err
	}

	if err := saveBels(ctx, tx, a); err != nil {
		return err
	}

	return tx.Commit()
}

func saveWires(ctx context.Context, tx *sql.Tx, a *arch.Arch) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO wires (id, name, type, x, y) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range a.Wires() {
		x, y := a.WireLocation(w)
		if _, err := stmt.ExecContext(ctx, int(w),
			a.Str(a.WireName(w)), a.Str(a.WireType(w)), x, y); err != nil {
			return errors.Wrapf(err, "save wire %s", a.Str(a.WireName(w)))
		}
	}

	return nil
}

func savePips(ctx context.Context, tx *sql.Tx, a *arch.Arch) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pips (id, name, type, src, dst, delay, x, y, z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range a.Pips() {
		loc := a.PipLocation(p)
		if _, err := stmt.ExecContext(ctx, int(p),
			a.Str(a.PipName(p)), a.Str(a.PipType(p)),
			int(a.PipSrcWire(p)), int(a.PipDstWire(p)),
			float64(a.PipDelay(p).Delay),
			loc.X, loc.Y, loc.Z); err != nil {
			return errors.Wrapf(err, "save pip %s", a.Str(a.PipName(p)))
		}
	}

	return nil
}

func saveBels(ctx context.Context, tx *sql.Tx, a *arch.Arch) error {
	belStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bels (id, name, type, x, y, z, gb)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer belStmt.Close()

	pinStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bel_pins (bel, pin, wire, dir) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pinStmt.Close()

	for _, b := range a.Bels() {
		loc := a.BelLocation(b)
		if _, err := belStmt.ExecContext(ctx, int(b),
			a.Str(a.BelName(b)), a.Str(a.BelType(b)),
			loc.X, loc.Y, loc.Z, a.BelGlobalBuf(b)); err != nil {
			return errors.Wrapf(err, "save bel %s", a.Str(a.BelName(b)))
		}

		for _, pin := range a.BelPins(b) {
			if _, err := pinStmt.ExecContext(ctx, int(b), a.Str(pin),
				int(a.BelPinWire(b, pin)),
				a.BelPinType(b, pin).String()); err != nil {
				return errors.Wrapf(err, "save pin %s of bel %s",
					a.Str(pin), a.Str(a.BelName(b)))
			}
		}
	}

	return nil
}

// SaveBindings replaces the stored bindings with the current bindings of the
// architecture.
func (s *SQLiteStore) SaveBindings(ctx context.Context, a *arch.Arch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearTables(ctx, tx, "wire_bindings", "bel_bindings"); err != nil {
		return err
	}

	nl := a.Netlist()

	wireStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO wire_bindings (wire, net, pip, strength) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wireStmt.Close()

	for _, id := range nl.Nets() {
		for w, pm := range nl.Net(id).Wires {
			var pip sql.NullInt64
			if pm.Pip.Valid() {
				pip = sql.NullInt64{Int64: int64(pm.Pip), Valid: true}
			}

			if _, err := wireStmt.ExecContext(ctx, int(w), nl.NetName(id),
				pip, pm.Strength.String()); err != nil {
				return errors.Wrapf(err, "save binding of net %s", nl.NetName(id))
			}
		}
	}

	belStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bel_bindings (bel, cell, strength) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer belStmt.Close()

	for _, id := range nl.Cells() {
		c := nl.Cell(id)
		if !c.Bel.Valid() {
			continue
		}

		if _, err := belStmt.ExecContext(ctx, int(c.Bel), nl.CellName(id),
			c.BelStrength.String()); err != nil {
			return errors.Wrapf(err, "save placement of cell %s", nl.CellName(id))
		}
	}

	return tx.Commit()
}

// Counts returns the row count of every export table.
func (s *SQLiteStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts

	targets := []struct {
		table string
		dst   *int
	}{
		{"wires", &c.Wires},
		{"pips", &c.Pips},
		{"bels", &c.Bels},
		{"bel_pins", &c.BelPins},
		{"wire_bindings", &c.WireBindings},
		{"bel_bindings", &c.BelBindings},
	}

	for _, t := range targets {
		row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.table)
		if err := row.Scan(t.dst); err != nil {
			return c, errors.Wrapf(err, "count %s", t.table)
		}
	}

	return c, nil
}

// Downhill returns the names of the wires reachable from the named wire
// through one pip, ordered by name.
func (s *SQLiteStore) Downhill(ctx context.Context, wire string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name FROM pips p
		JOIN wires s ON s.id = p.src
		JOIN wires d ON d.id = p.dst
		WHERE s.name = ?
		ORDER BY d.name`, wire)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pips")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan wire")
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

// NetOf returns the net bound to the named wire, or "" if the wire is free.
func (s *SQLiteStore) NetOf(ctx context.Context, wire string) (string, error) {
	var net string

	err := s.db.QueryRowContext(ctx, `
		SELECT b.net FROM wire_bindings b
		JOIN wires w ON w.id = b.wire
		WHERE w.name = ?`, wire).Scan(&net)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	return net, errors.Wrapf(err, "failed to query wire %s", wire)
}
