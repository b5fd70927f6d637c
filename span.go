package tagdsl

// LineCol is a 1-based (line, column) pair into the original source.
type LineCol struct {
	Line int
	Col  int
}

// Span is the half-open byte range [Start, End) a node occupies in the
// original source, plus the 1-based line/column of Start.
//
// Every AST node carries a Span for its full extent (including filters and
// spread sigils where applicable). Nodes that may host filters or a spread
// prefix additionally carry an inner Token span identifying the bare head —
// see TagToken.
type Span struct {
	Start   int
	End     int
	LineCol LineCol
}

// contains reports whether the half-open range [Start, End) of other is
// wholly contained in the half-open range [Start, End) of s. Used by tests
// asserting the span-containment invariant (spec property 1).
func (s Span) contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// shiftLeft returns a copy of s with Start and LineCol.Col moved back by n
// bytes/columns. Used to account for a spread sigil (`...`, `*`, `**`) that
// precedes a value's bare token (spec property 2).
func (s Span) shiftLeft(n int) Span {
	s.Start -= n
	s.LineCol.Col -= n
	return s
}
