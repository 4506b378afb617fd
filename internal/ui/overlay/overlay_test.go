package overlay

import "testing"

func TestPlace(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"

	tests := []struct {
		name    string
		overlay string
		x, y    int
		want    string
	}{
		{
			name:    "middle of second row",
			overlay: "XX",
			x:       3,
			y:       1,
			want:    "aaaaaaaaaa\nbbbXXbbbbb\ncccccccccc",
		},
		{
			name:    "two rows",
			overlay: "XX\nYY",
			x:       0,
			y:       0,
			want:    "XXaaaaaaaa\nYYbbbbbbbb\ncccccccccc",
		},
		{
			name:    "rows outside the base are dropped",
			overlay: "XX\nYY",
			x:       0,
			y:       2,
			want:    "aaaaaaaaaa\nbbbbbbbbbb\nXXcccccccc",
		},
		{
			name:    "overlay reaching the right edge",
			overlay: "XXX",
			x:       7,
			y:       0,
			want:    "aaaaaaaXXX\nbbbbbbbbbb\ncccccccccc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(base, tt.overlay, tt.x, tt.y, 10)
			if got != tt.want {
				t.Errorf("Place() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestPlacePadsShortBaseLines(t *testing.T) {
	got := Place("ab\ncd", "XX", 4, 0, 8)
	want := "ab  XX  \ncd"
	if got != want {
		t.Errorf("Place() = %q, want %q", got, want)
	}
}
