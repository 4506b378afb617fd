package prefs

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS variant_prefs (
			family TEXT PRIMARY KEY,
			glyph TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS recent_glyphs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			glyph TEXT NOT NULL UNIQUE,
			used_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_glyphs_used_at ON recent_glyphs(used_at);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`,
		currentSchemaVersion)
	return err
}
