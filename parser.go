package tagdsl

// Parser walks the tag grammar directly over a scanner in recursive-descent
// style, without an intermediate token stream: each parseXxx method both
// scans and builds its AST node at once.
type Parser struct {
	s         *scanner
	flags     map[string]struct{}
	seenFlags map[string]struct{}
}

func newParserFor(src string, flags map[string]struct{}) *Parser {
	if flags == nil {
		flags = map[string]struct{}{}
	}
	return &Parser{s: newScanner(src), flags: flags, seenFlags: map[string]struct{}{}}
}

// errorf builds a *Error positioned at the parser's current location.
func (p *Parser) errorf(sender, format string, args ...any) error {
	return newParseError(sender, p.s.tokenHere(), format, args...)
}

// expectRune consumes the rune r if present, else errors.
func (p *Parser) expectRune(sender string, r rune) error {
	if p.s.peek() != r {
		return p.errorf(sender, "expected %q", r)
	}
	p.s.next()
	return nil
}

// expectLiteral consumes the literal string lit if present, else errors.
func (p *Parser) expectLiteral(sender, lit string) error {
	if !p.s.hasPrefix(lit) {
		return p.errorf(sender, "expected %q", lit)
	}
	p.s.consume(lit)
	return nil
}

func (p *Parser) isFlag(name string) bool {
	_, ok := p.flags[name]
	return ok
}

// markFlagSeen records name as having appeared as a flag attribute on this
// tag, erroring if it already has: a flag name may be specified at most
// once per tag.
func (p *Parser) markFlagSeen(name string) error {
	if _, ok := p.seenFlags[name]; ok {
		return p.errorf("tag", "Flag '%s' may be specified only once.", name)
	}
	p.seenFlags[name] = struct{}{}
	return nil
}

// Parse parses a single `{% ... %}` tag, returning its AST. flags names
// the set of bare identifiers this call site treats as boolean flags
// rather than variable references when they appear as a positional value;
// pass nil if the tag defines none.
func Parse(source string, flags map[string]struct{}) (*Tag, error) {
	p := newParserFor(source, flags)
	tag, err := p.parseTag()
	if err != nil {
		return nil, err
	}
	if !p.s.eof() {
		return nil, p.errorf("tag", "unexpected trailing content %q", p.s.tokenHere().Val)
	}
	return tag, nil
}
