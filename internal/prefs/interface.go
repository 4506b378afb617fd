package prefs

// Interface defines the preference store contract for dependency injection
// and testing.
type Interface interface {
	Variants() (map[string]string, error)
	SaveVariant(family, glyph string) error
	Recent(limit int) ([]string, error)
	TouchRecent(glyph string, limit int) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
