// Package prefs persists picker preferences: chosen skin-tone variants per
// glyph family and the bounded recently-used list.
package prefs

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lhoarau/glyphdeck/internal/db"
)

const (
	appName    = "glyphdeck"
	dbFileName = "glyphdeck.db"
)

// Manager is the sqlite-backed preference store.
type Manager struct {
	db *sql.DB
}

// Open opens (creating if necessary) the preference database in the user's
// XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &Manager{db: sqlDB}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// Variants returns every stored variant preference, keyed by family base
// glyph.
func (m *Manager) Variants() (map[string]string, error) {
	rows, err := m.db.Query(`SELECT family, glyph FROM variant_prefs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var family, glyph string
		if err := rows.Scan(&family, &glyph); err != nil {
			return nil, err
		}
		out[family] = glyph
	}
	return out, rows.Err()
}

// SaveVariant stores glyph as the preferred variant for the family.
func (m *Manager) SaveVariant(family, glyph string) error {
	_, err := m.db.Exec(`
		INSERT INTO variant_prefs (family, glyph) VALUES (?, ?)
		ON CONFLICT(family) DO UPDATE SET glyph = excluded.glyph`,
		family, glyph)
	return err
}

// Recent returns up to limit recently used glyphs, most recent first.
func (m *Manager) Recent(limit int) ([]string, error) {
	rows, err := m.db.Query(`
		SELECT glyph FROM recent_glyphs
		ORDER BY used_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var glyph string
		if err := rows.Scan(&glyph); err != nil {
			return nil, err
		}
		out = append(out, glyph)
	}
	return out, rows.Err()
}

// TouchRecent records a use of glyph, moving it to the front of the recent
// list and trimming the list to limit entries.
func (m *Manager) TouchRecent(glyph string, limit int) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		// used_at is a monotonic sequence, not wall time: repeated touches
		// within the same second must still reorder the list.
		if _, err := tx.Exec(`
			INSERT INTO recent_glyphs (glyph, used_at)
			VALUES (?, (SELECT IFNULL(MAX(used_at), 0) + 1 FROM recent_glyphs))
			ON CONFLICT(glyph) DO UPDATE SET used_at = excluded.used_at`,
			glyph); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM recent_glyphs WHERE id NOT IN (
				SELECT id FROM recent_glyphs
				ORDER BY used_at DESC, id DESC
				LIMIT ?)`, limit)
		return err
	})
}
