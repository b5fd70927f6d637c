package tagdsl

import (
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestGolden drives parse+compile end to end against fixtures recorded as a
// txtar archive, the same "pairs of named files in one document" format the
// pack's x/tools dependency is built to read.
func TestGolden(t *testing.T) {
	ar, err := txtar.ParseFile("testdata/golden.txtar")
	if err != nil {
		t.Fatalf("loading golden.txtar: %v", err)
	}

	cases := map[string]struct {
		tag  string
		want string
	}{}

	for _, f := range ar.Files {
		parts := strings.SplitN(f.Name, "/", 2)
		if len(parts) != 2 {
			t.Fatalf("unexpected fixture name %q", f.Name)
		}
		name, kind := parts[0], parts[1]
		c := cases[name]
		content := strings.TrimRight(string(f.Data), "\n")
		switch kind {
		case "tag":
			c.tag = content
		case "want":
			c.want = content
		default:
			t.Fatalf("unexpected fixture section %q in %q", kind, f.Name)
		}
		cases[name] = c
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			tag, err := Parse(c.tag, nil)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", c.tag, err)
			}
			got, err := Compile(tag.Attrs)
			if err != nil {
				t.Fatalf("Compile returned error: %v", err)
			}
			if got != c.want {
				t.Errorf("Compile(%q) =\n%s\nwant\n%s", c.tag, got, c.want)
			}
		})
	}
}
