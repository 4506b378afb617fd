// Package emojidata holds the built-in glyph tables: eight fixed categories
// plus the skin-tone variant machinery for tone-capable glyphs.
package emojidata

// Entry is one built-in glyph. Toned entries form a variant family keyed by
// the base glyph; their concrete representation is the base glyph plus a
// Fitzpatrick modifier.
type Entry struct {
	Glyph string
	Name  string
	Toned bool
}

// Category indexes the fixed built-in categories, in display order after
// the Recent section.
type Category int

const (
	Smileys Category = iota
	Nature
	Food
	Activity
	Travel
	Objects
	Symbols

	CategoryCount
)

// Title returns the display title of a category.
func Title(c Category) string {
	switch c {
	case Smileys:
		return "Smileys & People"
	case Nature:
		return "Animals & Nature"
	case Food:
		return "Food & Drink"
	case Activity:
		return "Activity"
	case Travel:
		return "Travel & Places"
	case Objects:
		return "Objects"
	case Symbols:
		return "Symbols"
	}
	panic("emojidata: unknown category")
}

// tones are the five Fitzpatrick skin-tone modifiers.
var tones = []string{
	"\U0001F3FB", "\U0001F3FC", "\U0001F3FD", "\U0001F3FE", "\U0001F3FF",
}

// Variants returns the full variant strip for a toned base glyph: the base
// first, then the five toned forms.
func Variants(base string) []string {
	out := make([]string, 0, len(tones)+1)
	out = append(out, base)
	for _, t := range tones {
		out = append(out, base+t)
	}
	return out
}

// BaseOf strips a trailing skin-tone modifier, returning the variant
// family's base glyph. Glyphs without a modifier are returned unchanged.
func BaseOf(glyph string) string {
	for _, t := range tones {
		if len(glyph) > len(t) && glyph[len(glyph)-len(t):] == t {
			return glyph[:len(glyph)-len(t)]
		}
	}
	return glyph
}

// Section returns the entries of a category. The returned slice is shared;
// callers must not mutate it.
func Section(c Category) []Entry {
	return sections[c]
}

// Lookup resolves a glyph, toned or not, to its table entry. The second
// result is false for glyphs not in any built-in table.
func Lookup(glyph string) (Entry, bool) {
	e, ok := index[BaseOf(glyph)]
	return e, ok
}

var sections = [CategoryCount][]Entry{
	Smileys: {
		{Glyph: "😀", Name: "grinning face"},
		{Glyph: "😃", Name: "grinning face with big eyes"},
		{Glyph: "😄", Name: "grinning face with smiling eyes"},
		{Glyph: "😁", Name: "beaming face"},
		{Glyph: "😅", Name: "grinning face with sweat"},
		{Glyph: "😂", Name: "face with tears of joy"},
		{Glyph: "🙂", Name: "slightly smiling face"},
		{Glyph: "😉", Name: "winking face"},
		{Glyph: "😍", Name: "smiling face with heart-eyes"},
		{Glyph: "😘", Name: "face blowing a kiss"},
		{Glyph: "😎", Name: "smiling face with sunglasses"},
		{Glyph: "🤔", Name: "thinking face"},
		{Glyph: "😴", Name: "sleeping face"},
		{Glyph: "😭", Name: "loudly crying face"},
		{Glyph: "😡", Name: "pouting face"},
		{Glyph: "🤯", Name: "exploding head"},
		{Glyph: "🥳", Name: "partying face"},
		{Glyph: "😇", Name: "smiling face with halo"},
		{Glyph: "👋", Name: "waving hand", Toned: true},
		{Glyph: "👍", Name: "thumbs up", Toned: true},
		{Glyph: "👎", Name: "thumbs down", Toned: true},
		{Glyph: "👏", Name: "clapping hands", Toned: true},
		{Glyph: "🙏", Name: "folded hands", Toned: true},
		{Glyph: "💪", Name: "flexed biceps", Toned: true},
		{Glyph: "👌", Name: "OK hand", Toned: true},
		{Glyph: "✌️", Name: "victory hand", Toned: true},
		{Glyph: "🤝", Name: "handshake", Toned: true},
		{Glyph: "👉", Name: "pointing right", Toned: true},
	},
	Nature: {
		{Glyph: "🐶", Name: "dog face"},
		{Glyph: "🐱", Name: "cat face"},
		{Glyph: "🐭", Name: "mouse face"},
		{Glyph: "🦊", Name: "fox"},
		{Glyph: "🐻", Name: "bear"},
		{Glyph: "🐼", Name: "panda"},
		{Glyph: "🦁", Name: "lion"},
		{Glyph: "🐸", Name: "frog"},
		{Glyph: "🐙", Name: "octopus"},
		{Glyph: "🦋", Name: "butterfly"},
		{Glyph: "🌸", Name: "cherry blossom"},
		{Glyph: "🌲", Name: "evergreen tree"},
		{Glyph: "🌵", Name: "cactus"},
		{Glyph: "🍀", Name: "four leaf clover"},
		{Glyph: "🌙", Name: "crescent moon"},
		{Glyph: "⭐", Name: "star"},
		{Glyph: "🌈", Name: "rainbow"},
		{Glyph: "⚡", Name: "high voltage"},
	},
	Food: {
		{Glyph: "🍎", Name: "red apple"},
		{Glyph: "🍌", Name: "banana"},
		{Glyph: "🍉", Name: "watermelon"},
		{Glyph: "🍇", Name: "grapes"},
		{Glyph: "🍓", Name: "strawberry"},
		{Glyph: "🥑", Name: "avocado"},
		{Glyph: "🍕", Name: "pizza"},
		{Glyph: "🍔", Name: "hamburger"},
		{Glyph: "🍟", Name: "french fries"},
		{Glyph: "🌮", Name: "taco"},
		{Glyph: "🍣", Name: "sushi"},
		{Glyph: "🍜", Name: "steaming bowl"},
		{Glyph: "🍝", Name: "spaghetti"},
		{Glyph: "🍩", Name: "doughnut"},
		{Glyph: "🎂", Name: "birthday cake"},
		{Glyph: "☕", Name: "hot beverage"},
		{Glyph: "🍺", Name: "beer mug"},
	},
	Activity: {
		{Glyph: "⚽", Name: "soccer ball"},
		{Glyph: "🏀", Name: "basketball"},
		{Glyph: "🏈", Name: "american football"},
		{Glyph: "🎾", Name: "tennis"},
		{Glyph: "🎳", Name: "bowling"},
		{Glyph: "🏓", Name: "ping pong"},
		{Glyph: "🎯", Name: "bullseye"},
		{Glyph: "🎮", Name: "video game"},
		{Glyph: "🎲", Name: "game die"},
		{Glyph: "🎸", Name: "guitar"},
		{Glyph: "🎹", Name: "musical keyboard"},
		{Glyph: "🎤", Name: "microphone"},
		{Glyph: "🏆", Name: "trophy"},
		{Glyph: "🥇", Name: "gold medal"},
	},
	Travel: {
		{Glyph: "🚗", Name: "automobile"},
		{Glyph: "🚕", Name: "taxi"},
		{Glyph: "🚌", Name: "bus"},
		{Glyph: "🚲", Name: "bicycle"},
		{Glyph: "🚂", Name: "locomotive"},
		{Glyph: "✈️", Name: "airplane"},
		{Glyph: "🚀", Name: "rocket"},
		{Glyph: "⛵", Name: "sailboat"},
		{Glyph: "🗽", Name: "statue of liberty"},
		{Glyph: "🗼", Name: "tokyo tower"},
		{Glyph: "🏔️", Name: "snow-capped mountain"},
		{Glyph: "🏝️", Name: "desert island"},
		{Glyph: "🌋", Name: "volcano"},
	},
	Objects: {
		{Glyph: "⌚", Name: "watch"},
		{Glyph: "📱", Name: "mobile phone"},
		{Glyph: "💻", Name: "laptop"},
		{Glyph: "⌨️", Name: "keyboard"},
		{Glyph: "🖨️", Name: "printer"},
		{Glyph: "💡", Name: "light bulb"},
		{Glyph: "🔦", Name: "flashlight"},
		{Glyph: "📚", Name: "books"},
		{Glyph: "✏️", Name: "pencil"},
		{Glyph: "📌", Name: "pushpin"},
		{Glyph: "🔑", Name: "key"},
		{Glyph: "🔨", Name: "hammer"},
		{Glyph: "🧲", Name: "magnet"},
		{Glyph: "🎁", Name: "wrapped gift"},
	},
	Symbols: {
		{Glyph: "❤️", Name: "red heart"},
		{Glyph: "💔", Name: "broken heart"},
		{Glyph: "💯", Name: "hundred points"},
		{Glyph: "✅", Name: "check mark button"},
		{Glyph: "❌", Name: "cross mark"},
		{Glyph: "⚠️", Name: "warning"},
		{Glyph: "❓", Name: "question mark"},
		{Glyph: "❗", Name: "exclamation mark"},
		{Glyph: "♻️", Name: "recycling symbol"},
		{Glyph: "🔁", Name: "repeat button"},
		{Glyph: "🎵", Name: "musical note"},
		{Glyph: "💤", Name: "zzz"},
	},
}

// index maps base glyphs to their entries for reverse lookup.
var index = func() map[string]Entry {
	m := make(map[string]Entry)
	for _, section := range sections {
		for _, e := range section {
			m[e.Glyph] = e
		}
	}
	return m
}()
