package tagdsl

// parseTag implements:
//
//	django_tag := "{%" gap? tag_name (realgap attribute (gap attribute)*)? gap? "/"? "%}"
//
// Unlike a comma-separated argument list, attributes here are separated by
// plain whitespace/comments (no comma), mirroring a Django-style tag body;
// the grammar only uses commas inside list and dict literals.
func (p *Parser) parseTag() (*Tag, error) {
	start := p.s.point()

	if err := p.expectLiteral("tag", "{%"); err != nil {
		return nil, err
	}
	p.s.skipGap()

	name, err := p.parseTagName()
	if err != nil {
		return nil, err
	}

	var attrs []*TagAttr
	sawWS := p.s.skipGap()
	for !p.atTagEnd() {
		if len(attrs) == 0 && !sawWS {
			return nil, p.errorf("tag", "tag name must be followed by whitespace before %q", p.s.tokenHere().Val)
		}
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
		gapStart := p.s.pos
		sawWS = p.s.skipGap()
		if p.s.pos == gapStart && !p.atTagEnd() {
			return nil, p.errorf("tag", "attributes must be separated by whitespace before %q", p.s.tokenHere().Val)
		}
	}

	selfClosing := false
	if p.s.peek() == '/' {
		p.s.next()
		selfClosing = true
		p.s.skipGap()
	}

	if err := p.expectLiteral("tag", "%}"); err != nil {
		return nil, err
	}

	tag := &Tag{
		Name:          name,
		Attrs:         attrs,
		IsSelfClosing: selfClosing,
		Syntax:        SyntaxDefault,
		Span:          p.s.spanFrom(start),
	}
	return tag, nil
}

func (p *Parser) atTagEnd() bool {
	return p.s.peek() == '/' || p.s.hasPrefix("%}") || p.s.eof()
}

func (p *Parser) parseTagName() (TagToken, error) {
	start := p.s.point()
	if !isIdentStart(p.s.peek()) {
		return TagToken{}, p.errorf("tag", "expected tag name, got %q", p.s.tokenHere().Val)
	}
	p.s.next()
	p.s.acceptRun(tagNameChars)
	return TagToken{Text: p.s.src[start.Start:p.s.pos], Span: p.s.spanFrom(start)}, nil
}

// parseAttribute implements:
//
//	attribute := key "=" filtered_value   -- no gap around "="
//	           | spread_value
//	           | filtered_value
//
// key is only committed to once "=" is seen immediately after it (no gap);
// otherwise the same text is re-read as the start of a filtered_value,
// which is exactly what lets `foo` (a bare variable/flag) and `foo=bar` (a
// kwarg) share a prefix without a separate lookahead token.
func (p *Parser) parseAttribute() (*TagAttr, error) {
	start := p.s.point()

	if p.s.hasPrefix("...") {
		// A bare "key" can never start with '.', so there is no ambiguity
		// with a kwarg here. A lone '.' that is not the start of "..." falls
		// through below, where it can only mean a leading-dot float literal
		// such as ".5". "*" and "**" are never valid at attribute position
		// (they are list- and dict-internal sigils) and fall through to
		// parseFilteredValue, which rejects them with a plain syntax error.
		val, err := p.parseSpreadValue()
		if err != nil {
			return nil, err
		}
		return &TagAttr{Value: val, Span: p.s.spanFrom(start)}, nil
	}

	if isIdentStart(p.s.peek()) {
		keyStart := p.s.pos
		keyStartPoint := p.s.point()
		p.s.next()
		p.s.acceptRun(keyExtraChars)
		keyEnd := p.s.pos
		if p.s.peek() == '=' {
			key := TagToken{Text: p.s.src[keyStart:keyEnd], Span: p.s.spanFrom(keyStartPoint)}
			p.s.next() // consume "=", no gap permitted on either side
			val, err := p.parseFilteredValue()
			if err != nil {
				return nil, err
			}
			return &TagAttr{Key: &key, Value: val, Span: p.s.spanFrom(start)}, nil
		}
		// Not a kwarg: rewind and parse the same text as a value.
		p.s.pos = keyStart
		p.s.line = keyStartPoint.LineCol.Line
		p.s.col = keyStartPoint.LineCol.Col
	}

	val, err := p.parseFilteredValue()
	if err != nil {
		return nil, err
	}
	attr := &TagAttr{Value: val, Span: p.s.spanFrom(start)}
	if val.Kind == ValueVariable && !val.IsSpread() && len(val.Filters) == 0 && p.isFlag(val.Token.Text) {
		if err := p.markFlagSeen(val.Token.Text); err != nil {
			return nil, err
		}
		attr.IsFlag = true
	}
	return attr, nil
}
