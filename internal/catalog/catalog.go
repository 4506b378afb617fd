// Package catalog assembles the picker's sections: the fixed built-in
// categories (Recent first, then the emojidata categories) followed by a
// variable number of provider-supplied custom sets.
package catalog

import (
	"github.com/lhoarau/glyphdeck/internal/catalog/emojidata"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
	"github.com/lhoarau/glyphdeck/internal/prefs"
)

// Built-in section indices. Custom sets follow from BuiltinCount upward in
// provider order.
const (
	SectionRecent = 0

	// BuiltinCount is Recent plus the emojidata categories.
	BuiltinCount = 1 + int(emojidata.CategoryCount)
)

// Glyph is one resolved built-in item: the concrete representation to draw
// (variant preference already applied) plus its family metadata.
type Glyph struct {
	Glyph    string
	Name     string
	Family   string   // base glyph of the variant family; empty if untoned
	Variants []string // full variant strip; nil if untoned
}

// HasVariants reports whether the glyph opens a variant strip on press.
func (g Glyph) HasVariants() bool {
	return len(g.Variants) > 0
}

// Document is one content document of a custom set, as supplied by the
// provider: a content id plus a loader factory for its render instance.
type Document struct {
	ID        render.ContentID
	NewLoader func() render.Loader
}

// SetDescriptor describes one custom set as supplied by the provider.
type SetDescriptor struct {
	ID    uint64
	Title string
	Docs  []Document
}

// Provider supplies the ordered custom sets. Implementations signal changes
// to the host, which responds with a full Refresh.
type Provider interface {
	Sets() []SetDescriptor
}

// CustomItem is one cell of a custom set, holding only the non-owning
// content key; the render registry owns the instance.
type CustomItem struct {
	Content render.ContentID
}

// CustomSet is one live custom section.
type CustomSet struct {
	ID      uint64
	Title   string
	List    []CustomItem
	Painted bool // drawn since it last became visible
}

// Catalog is the live section model. Not safe for concurrent use; all calls
// come from the UI loop.
type Catalog struct {
	provider    Provider
	registry    *render.Registry
	store       prefs.Interface
	recentLimit int

	builtin  [BuiltinCount][]Glyph
	custom   []*CustomSet
	counts   []int
	variants map[string]string
}

// New builds a catalog over the given collaborators and performs the
// initial refresh.
func New(provider Provider, registry *render.Registry, store prefs.Interface, recentLimit int) *Catalog {
	c := &Catalog{
		provider:    provider,
		registry:    registry,
		store:       store,
		recentLimit: recentLimit,
	}
	c.Refresh()
	return c
}

// Sections returns the current number of sections.
func (c *Catalog) Sections() int {
	return BuiltinCount + len(c.custom)
}

// Counts returns the per-section item counts, ordered built-ins first. The
// slice is rebuilt on every refresh; callers treat it as a snapshot.
func (c *Catalog) Counts() []int {
	return c.counts
}

// Title returns the display title of a section.
func (c *Catalog) Title(section int) string {
	if section == SectionRecent {
		return "Recently Used"
	}
	if section < BuiltinCount {
		return emojidata.Title(emojidata.Category(section - 1))
	}
	return c.custom[section-BuiltinCount].Title
}

// IsCustom reports whether the section is a provider-supplied custom set.
func (c *Catalog) IsCustom(section int) bool {
	return section >= BuiltinCount
}

// Custom returns the custom set behind a section index.
// Panics if the section is not a custom section.
func (c *Catalog) Custom(section int) *CustomSet {
	if !c.IsCustom(section) || section-BuiltinCount >= len(c.custom) {
		panic("catalog: not a custom section")
	}
	return c.custom[section-BuiltinCount]
}

// CustomSets returns the live custom sets in section order.
func (c *Catalog) CustomSets() []*CustomSet {
	return c.custom
}

// Glyph returns the resolved built-in glyph at (section, offset). The
// second result is false for custom sections or out-of-range offsets.
func (c *Catalog) Glyph(section, offset int) (Glyph, bool) {
	if section < 0 || section >= BuiltinCount {
		return Glyph{}, false
	}
	list := c.builtin[section]
	if offset < 0 || offset >= len(list) {
		return Glyph{}, false
	}
	return list[offset], true
}

// SetGlyph replaces the resolved glyph at (section, offset), used when a
// variant commit changes a cell's concrete representation in place.
func (c *Catalog) SetGlyph(section, offset int, g Glyph) {
	c.builtin[section][offset] = g
}

// TotalItems returns the item count across all sections.
func (c *Catalog) TotalItems() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// RecentLimit returns the configured maximum recent-list length.
func (c *Catalog) RecentLimit() int {
	return c.recentLimit
}

// RefreshRecent reloads only the Recent section, after a commit touched the
// store, and updates the count snapshot to match.
func (c *Catalog) RefreshRecent() {
	c.refreshRecent(c.variants)
	if len(c.counts) > SectionRecent {
		c.counts[SectionRecent] = len(c.builtin[SectionRecent])
	}
}

// NoteVariantPref records a just-saved preference so presses in the same
// session see it without a store round trip.
func (c *Catalog) NoteVariantPref(family, glyph string) {
	if c.variants == nil {
		c.variants = make(map[string]string)
	}
	c.variants[family] = glyph
}

// HasVariantPref reports whether a variant preference is stored for the
// family. Presses on preferred glyphs delay the strip; presses on
// unpreferred ones open it immediately.
func (c *Catalog) HasVariantPref(family string) bool {
	_, ok := c.variants[family]
	return ok
}

// SectionsReferencing returns the indices of custom sections containing at
// least one item with the given content id.
func (c *Catalog) SectionsReferencing(id render.ContentID) []int {
	var out []int
	for i, set := range c.custom {
		for _, item := range set.List {
			if item.Content == id {
				out = append(out, BuiltinCount+i)
				break
			}
		}
	}
	return out
}

// Refresh rebuilds everything that depends on external state: the recent
// list, variant-resolved built-in sections, and the custom set list. It is
// never partial; counts, sets and registry references all come out of the
// same pass.
func (c *Catalog) Refresh() {
	variants, err := c.store.Variants()
	if err != nil {
		variants = nil
	}
	c.variants = variants

	c.refreshRecent(variants)
	for cat := emojidata.Category(0); cat < emojidata.CategoryCount; cat++ {
		c.builtin[1+int(cat)] = resolveSection(emojidata.Section(cat), variants)
	}
	c.refreshCustom()

	counts := make([]int, 0, c.Sections())
	for _, list := range c.builtin {
		counts = append(counts, len(list))
	}
	for _, set := range c.custom {
		counts = append(counts, len(set.List))
	}
	c.counts = counts
}

// refreshRecent reloads the Recent section from the preference store.
func (c *Catalog) refreshRecent(variants map[string]string) {
	recent, err := c.store.Recent(c.recentLimit)
	if err != nil {
		recent = nil
	}
	list := make([]Glyph, 0, len(recent))
	for _, glyph := range recent {
		list = append(list, resolveRecent(glyph, variants))
	}
	c.builtin[SectionRecent] = list
}

// refreshCustom rebuilds the custom set list wholesale, moving over any old
// set whose id and ordered document list are unchanged so its painted state
// and loaded instances survive the refresh.
func (c *Catalog) refreshCustom() {
	old := c.custom
	c.custom = nil
	for _, desc := range c.provider.Sets() {
		if len(desc.Docs) == 0 {
			continue
		}
		if prev := takeMatching(&old, desc); prev != nil {
			c.custom = append(c.custom, prev)
			continue
		}
		set := &CustomSet{ID: desc.ID, Title: desc.Title}
		for _, doc := range desc.Docs {
			c.registry.Ensure(doc.ID, doc.NewLoader)
			set.List = append(set.List, CustomItem{Content: doc.ID})
		}
		c.custom = append(c.custom, set)
	}
}

// takeMatching removes and returns the old set matching desc (same id, same
// ordered content list), or nil.
func takeMatching(old *[]*CustomSet, desc SetDescriptor) *CustomSet {
	for i, set := range *old {
		if set == nil || set.ID != desc.ID || len(set.List) != len(desc.Docs) {
			continue
		}
		same := true
		for k, item := range set.List {
			if item.Content != desc.Docs[k].ID {
				same = false
				break
			}
		}
		if !same {
			continue
		}
		(*old)[i] = nil
		return set
	}
	return nil
}

// resolveSection applies stored variant preferences to a category's entries.
func resolveSection(entries []emojidata.Entry, variants map[string]string) []Glyph {
	out := make([]Glyph, 0, len(entries))
	for _, e := range entries {
		g := Glyph{Glyph: e.Glyph, Name: e.Name}
		if e.Toned {
			g.Family = e.Glyph
			g.Variants = emojidata.Variants(e.Glyph)
			if chosen, ok := variants[e.Glyph]; ok {
				g.Glyph = chosen
			}
		}
		out = append(out, g)
	}
	return out
}

// resolveRecent builds a Glyph for a recent-list entry. Recent entries keep
// the concrete representation they were committed with and never re-apply
// variant preferences, but still expose their family for the picker.
func resolveRecent(glyph string, _ map[string]string) Glyph {
	g := Glyph{Glyph: glyph, Name: glyph}
	if e, ok := emojidata.Lookup(glyph); ok {
		g.Name = e.Name
		if e.Toned {
			g.Family = emojidata.BaseOf(glyph)
			g.Variants = emojidata.Variants(g.Family)
		}
	}
	return g
}
