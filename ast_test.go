package tagdsl

import "testing"

// TestSpanContainment checks the span-containment invariant: every attr's
// span sits inside the tag's span, and every filter's span sits inside its
// value's span.
func TestSpanContainment(t *testing.T) {
	tag, err := Parse(`{% component "card" title="hi"|upper ...extra %}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range tag.Attrs {
		if !tag.Span.contains(a.Span) {
			t.Errorf("tag span %+v does not contain attr span %+v", tag.Span, a.Span)
		}
		if a.Value != nil {
			if !a.Span.contains(a.Value.Span) {
				t.Errorf("attr span %+v does not contain value span %+v", a.Span, a.Value.Span)
			}
			for _, f := range a.Value.Filters {
				if !a.Value.Span.contains(f.Span) {
					t.Errorf("value span %+v does not contain filter span %+v", a.Value.Span, f.Span)
				}
			}
		}
	}
}

// TestSpreadOffsetLaw checks that a spread-prefixed value's outer span
// starts exactly sigil-length bytes before its bare token's span.
func TestSpreadOffsetLaw(t *testing.T) {
	// "..." is the only sigil valid at attribute position; "*" is list-item
	// internal and "**" is dict-entry internal, so each is exercised in its
	// own context.
	tests := []struct {
		src   string
		sigil Spread
		value func(tag *Tag) *TagValue
	}{
		{`{% component ...extra %}`, SpreadDots, func(tag *Tag) *TagValue { return tag.Attrs[0].Value }},
		{`{% component [*items] %}`, SpreadStar, func(tag *Tag) *TagValue { return tag.Attrs[0].Value.Children[0] }},
		{`{% component data={**kwargs} %}`, SpreadDblStar, func(tag *Tag) *TagValue { return tag.Attrs[0].Value.Children[0] }},
	}
	for _, tt := range tests {
		tag, err := Parse(tt.src, nil)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tt.src, err)
		}
		v := tt.value(tag)
		if v.Spread != tt.sigil {
			t.Fatalf("Spread = %q, want %q", v.Spread, tt.sigil)
		}
		gotOffset := v.Token.Span.Start - v.Span.Start
		if gotOffset != tt.sigil.Len() {
			t.Errorf("Parse(%q): token/value start offset = %d, want %d", tt.src, gotOffset, tt.sigil.Len())
		}
		if v.Span.End != v.Token.Span.End {
			t.Errorf("Parse(%q): spread must not move the end of the span", tt.src)
		}
	}
}

// TestTagTokenNeverIncludesFiltersOrSpread checks that a value's inner
// Token span stops at the bare head even when filters and a spread sigil
// are both present.
func TestTagTokenNeverIncludesFiltersOrSpread(t *testing.T) {
	tag, err := Parse(`{% component ...extra|upper|default:"x" %}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := tag.Attrs[0].Value
	if v.Token.Span == v.Span {
		t.Fatal("Token.Span must not equal the full value Span when filters/spread are present")
	}
	if v.Token.Text != "extra" {
		t.Fatalf("Token.Text = %q, want %q", v.Token.Text, "extra")
	}
	if len(v.Filters) != 2 {
		t.Fatalf("len(Filters) = %d, want 2", len(v.Filters))
	}
}

// TestExactSpansForSimpleTag checks a single bare positional value's span and
// the enclosing tag's span, down to the byte offset and line/column.
func TestExactSpansForSimpleTag(t *testing.T) {
	src := `{% my_tag val %}`
	tag, err := Parse(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tag.Attrs) != 1 {
		t.Fatalf("len(Attrs) = %d, want 1", len(tag.Attrs))
	}
	wantTag := Span{Start: 0, End: 16, LineCol: LineCol{Line: 1, Col: 1}}
	if tag.Span != wantTag {
		t.Errorf("tag.Span = %+v, want %+v", tag.Span, wantTag)
	}
	val := tag.Attrs[0].Value
	wantVal := Span{Start: 10, End: 13, LineCol: LineCol{Line: 1, Col: 11}}
	if val.Span != wantVal {
		t.Errorf("value Span = %+v, want %+v", val.Span, wantVal)
	}
}

func TestEqualReflexive(t *testing.T) {
	src := `{% component "card" title="hi"|upper [1, 2] data={"a": 1} ...extra %}`
	a, err := Parse(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("two parses of the same source should be Equal:\n%s\nvs\n%s", a, b)
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a, err := Parse(`{% component "card" %}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Parse(`{% component "other" %}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Equal(b) {
		t.Fatal("tags with different attribute values must not be Equal")
	}
}

// TestDebugFormReproducesFields exercises the kr/pretty-backed String()
// method and checks a representative set of fields surface in it.
func TestDebugFormReproducesFields(t *testing.T) {
	tag, err := Parse(`{% component "card" title="hi" %}`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := tag.String()
	for _, want := range []string{"component", "card", "title", "hi"} {
		if !containsSubstring(s, want) {
			t.Errorf("Tag.String() = %q, missing %q", s, want)
		}
	}
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
