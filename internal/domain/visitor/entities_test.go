package visitor

import (
	"reflect"
	"testing"
)

func TestDecodePageSet(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"valid array", `["/a","/b"]`, []string{"/a", "/b"}},
		{"empty array", `[]`, []string{}},
		{"empty input", "", nil},
		{"malformed json", `["/a",`, nil},
		{"wrong shape", `{"pages":["/a"]}`, nil},
		{"mixed types", `["/a", 42]`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodePageSet(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DecodePageSet(%q) = %#v, want %#v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestVisitorPageSet(t *testing.T) {
	v := &Visitor{ID: "v1", ClientID: 1, RecentPagesJSON: `["/pricing","/docs"]`}
	if got := v.PageSet(); !reflect.DeepEqual(got, []string{"/pricing", "/docs"}) {
		t.Fatalf("unexpected page set: %#v", got)
	}

	corrupt := &Visitor{ID: "v2", ClientID: 1, RecentPagesJSON: "not json"}
	if got := corrupt.PageSet(); got != nil {
		t.Fatalf("expected nil page set for corrupt payload, got %#v", got)
	}
}
