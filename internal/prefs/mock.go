package prefs

// Mock is an in-memory test double for Manager.
type Mock struct {
	variants map[string]string
	recent   []string
	touches  int
	closed   bool
}

// NewMock creates a new mock preference store for testing.
func NewMock() *Mock {
	return &Mock{variants: make(map[string]string)}
}

func (m *Mock) Variants() (map[string]string, error) {
	out := make(map[string]string, len(m.variants))
	for k, v := range m.variants {
		out[k] = v
	}
	return out, nil
}

func (m *Mock) SaveVariant(family, glyph string) error {
	m.variants[family] = glyph
	return nil
}

func (m *Mock) Recent(limit int) ([]string, error) {
	if len(m.recent) > limit {
		return append([]string(nil), m.recent[:limit]...), nil
	}
	return append([]string(nil), m.recent...), nil
}

func (m *Mock) TouchRecent(glyph string, limit int) error {
	m.touches++
	out := []string{glyph}
	for _, g := range m.recent {
		if g != glyph {
			out = append(out, g)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	m.recent = out
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

// SetVariant seeds a stored variant preference.
func (m *Mock) SetVariant(family, glyph string) { m.variants[family] = glyph }

// SetRecent seeds the recent list, most recently used first.
func (m *Mock) SetRecent(glyphs []string) { m.recent = glyphs }

// TouchCount returns how many times TouchRecent was called.
func (m *Mock) TouchCount() int { return m.touches }

// IsClosed reports whether Close was called.
func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
