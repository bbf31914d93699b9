package shared

import "testing"

func TestSlugify(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "basic name",
			in:   "Daft Punk",
			want: "daft-punk",
		},
		{
			name: "punctuation collapses",
			in:   "Sigur Rós ( )",
			want: "sigur-r-s",
		},
		{
			name: "leading and trailing separators trimmed",
			in:   "  ...And You Will Know Us",
			want: "and-you-will-know-us",
		},
		{
			name: "already a slug",
			in:   "ok-computer",
			want: "ok-computer",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected distinct ids")
	}
}
