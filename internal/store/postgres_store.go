package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps worlds in a PostgreSQL table, one JSONB payload per
// world.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := ps.db.Exec(schema)
	return err
}

// SaveWorld upserts the snapshot under its name.
func (ps *PostgresStore) SaveWorld(s *Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal world %s: %w", s.Name, err)
	}
	query := `
	INSERT INTO worlds (name, width, height, seed, payload)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $2, height = $3, seed = $4, payload = $5,
		updated_at = NOW()
	`
	if _, err := ps.db.Exec(query, s.Name, s.Width, s.Height, s.Seed, string(payload)); err != nil {
		return fmt.Errorf("save world %s: %w", s.Name, err)
	}
	return nil
}

// LoadWorld reads a world by name.
func (ps *PostgresStore) LoadWorld(name string) (*Snapshot, error) {
	var payload []byte
	err := ps.db.QueryRow(`SELECT payload FROM worlds WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load world %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", name, err)
	}
	var s Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("parse world %s: %w", name, err)
	}
	return &s, nil
}

// ListWorlds returns the stored world names in lexical order.
func (ps *PostgresStore) ListWorlds() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM worlds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list worlds: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list worlds: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
