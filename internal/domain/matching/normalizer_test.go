package matching

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"full url with query and mixed case", "HTTPS://Example.com/Blog/Post-1/?x=1", "/blog/post-1"},
		{"path only", "/pricing", "/pricing"},
		{"trailing slash stripped once", "/pricing/", "/pricing"},
		{"double trailing slash keeps one", "/pricing//", "/pricing/"},
		{"fragment discarded", "https://example.com/docs#install", "/docs"},
		{"query discarded", "/docs?page=2", "/docs"},
		{"uppercase path lowered", "/Docs/Getting-Started", "/docs/getting-started"},
		{"surrounding whitespace", "  /pricing  ", "/pricing"},
		{"empty input", "", ""},
		{"host without path", "https://example.com", ""},
		{"unparseable input", "http://exa mple.com/%zz", ""},
		{"root slash collapses to empty", "/", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"HTTPS://Example.com/Blog/Post-1/?x=1",
		"/pricing/",
		"/Docs/Getting-Started",
		"",
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		name        string
		visitorPath string
		contentPath string
		want        bool
	}{
		{"exact match", "/blog/post-1", "/blog/post-1", true},
		{"visitor deeper than content", "/blog/post-1/comments", "/blog/post-1", true},
		{"literal prefix across segment boundary", "/blog/post-1-extended", "/blog/post-1", true},
		{"content deeper than visitor", "/blog", "/blog/post-1", false},
		{"disjoint paths", "/pricing", "/blog", false},
		{"empty visitor path", "", "/blog", false},
		{"empty content path", "/blog", "", false},
		{"both empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Matches(tc.visitorPath, tc.contentPath)
			if got != tc.want {
				t.Fatalf("Matches(%q, %q) = %v, want %v", tc.visitorPath, tc.contentPath, got, tc.want)
			}
		})
	}
}
