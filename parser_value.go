package tagdsl

import "strings"

// parseFilteredValue implements:
//
//	filtered_value := value ( gap? "|" gap? filter )*
//
// Gaps (whitespace/comments) are permitted around the pipe, unlike the tight
// spots enforced elsewhere (key "=" value, and a spread sigil immediately
// before its value).
func (p *Parser) parseFilteredValue() (*TagValue, error) {
	val, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	for {
		save := *p.s
		p.s.skipGap()
		if p.s.peek() != '|' {
			*p.s = save
			break
		}
		filter, err := p.parseFilter()
		if err != nil {
			return nil, err
		}
		val.Filters = append(val.Filters, filter)
		val.Span.End = filter.Span.End
	}
	return val, nil
}

// parseValue implements:
//
//	value := list | dict | string | translation | number | variable
func (p *Parser) parseValue() (*TagValue, error) {
	switch r := p.s.peek(); {
	case r == '[':
		traceBacktrack("value", "list")
		return p.parseList()
	case r == '{':
		traceBacktrack("value", "dict")
		return p.parseDict()
	case r == '"' || r == '\'':
		traceBacktrack("value", "string")
		return p.parseStringLiteralValue()
	case r == '_' && p.s.peekString(2) == "_(":
		traceBacktrack("value", "translation")
		return p.parseTranslation()
	case r == '+' || r == '-' || r == '.' || (r >= '0' && r <= '9'):
		traceBacktrack("value", "number")
		return p.parseNumber()
	case isIdentStart(r):
		traceBacktrack("value", "variable")
		return p.parseVariable()
	default:
		return nil, p.errorf("value", "unexpected character %q", p.s.tokenHere().Val)
	}
}

// parseSpreadValue implements spread_value := "..." filtered_value, with
// zero gap between the sigil and the value it prefixes. This is the
// attribute-position spread only: "*" expands a value into a list, "**"
// merges a value into a dict, and neither is valid here (parseListItem and
// parseDictEntry parse those directly, in their own contexts).
func (p *Parser) parseSpreadValue() (*TagValue, error) {
	if !p.s.hasPrefix(string(SpreadDots)) {
		return nil, p.errorf("value", "expected %q, got %q", string(SpreadDots), p.s.tokenHere().Val)
	}
	p.s.consume(string(SpreadDots))
	val, err := p.parseFilteredValue()
	if err != nil {
		return nil, err
	}
	val.Spread = SpreadDots
	val.Span = val.Span.shiftLeft(SpreadDots.Len())
	return val, nil
}

// parseListItem implements list_item := "*"? filtered_value. "*" is the only
// spread sigil valid inside a list; "..." and "**" are rejected here so that
// combining sigils (e.g. "...*", "**" inside a list) is a syntax error.
func (p *Parser) parseListItem() (*TagValue, error) {
	if p.s.hasPrefix("...") {
		return nil, p.errorf("value", "%q is not a valid list spread, use %q", "...", "*")
	}
	if p.s.hasPrefix(string(SpreadDblStar)) {
		return nil, p.errorf("value", "%q is not a valid list spread, use %q", "**", "*")
	}
	if p.s.peek() == '*' {
		p.s.next()
		val, err := p.parseFilteredValue()
		if err != nil {
			return nil, err
		}
		val.Spread = SpreadStar
		val.Span = val.Span.shiftLeft(SpreadStar.Len())
		return val, nil
	}
	return p.parseFilteredValue()
}

// parseList implements list := "[" gap? (item (gap? "," gap? item)* gap? ","? )? gap? "]".
func (p *Parser) parseList() (*TagValue, error) {
	start := p.s.point()
	p.s.next() // '['
	p.s.skipGap()
	var children []*TagValue
	for p.s.peek() != ']' {
		if p.s.eof() {
			return nil, p.errorf("value", "unterminated list literal")
		}
		item, err := p.parseListItem()
		if err != nil {
			return nil, err
		}
		children = append(children, item)
		p.s.skipGap()
		if p.s.peek() == ',' {
			p.s.next()
			p.s.skipGap()
			continue
		}
		break
	}
	if err := p.expectRune("value", ']'); err != nil {
		return nil, err
	}
	sp := p.s.spanFrom(start)
	return &TagValue{Token: TagToken{Span: sp}, Kind: ValueList, Children: children, Span: sp}, nil
}

// parseDict implements dict := "{" gap? (entry (gap? "," gap? entry)* gap? ","? )? gap? "}".
// Each entry is represented as a TagValue whose two Children are the key and
// the associated value — this avoids adding a separate key/value pair type
// alongside TagAttr for what is structurally the same shape. A "**value"
// entry merges another dict/mapping and is represented as that value with
// Spread set to SpreadDblStar, same as a spread list item.
func (p *Parser) parseDict() (*TagValue, error) {
	start := p.s.point()
	p.s.next() // '{'
	p.s.skipGap()
	var children []*TagValue
	for p.s.peek() != '}' {
		if p.s.eof() {
			return nil, p.errorf("value", "unterminated dict literal")
		}
		entry, err := p.parseDictEntry()
		if err != nil {
			return nil, err
		}
		children = append(children, entry)
		p.s.skipGap()
		if p.s.peek() == ',' {
			p.s.next()
			p.s.skipGap()
			continue
		}
		break
	}
	if err := p.expectRune("value", '}'); err != nil {
		return nil, err
	}
	sp := p.s.spanFrom(start)
	return &TagValue{Token: TagToken{Span: sp}, Kind: ValueDict, Children: children, Span: sp}, nil
}

// parseDictEntry implements dict_item := dict_item_spread | dict_item_pair,
// where dict_item_spread := "**" filtered_value and
// dict_item_pair := filtered_value ":" filtered_value. "..." and a lone "*"
// are rejected here; "**" is the only merge sigil valid inside a dict. The
// key goes through the same filter-chain parse as any other value, and may
// be of any kind except List or Dict.
func (p *Parser) parseDictEntry() (*TagValue, error) {
	if p.s.hasPrefix("...") {
		return nil, p.errorf("value", "%q is not a valid dict spread, use %q", "...", "**")
	}
	if p.s.hasPrefix(string(SpreadDblStar)) {
		p.s.consume(string(SpreadDblStar))
		val, err := p.parseFilteredValue()
		if err != nil {
			return nil, err
		}
		val.Spread = SpreadDblStar
		val.Span = val.Span.shiftLeft(SpreadDblStar.Len())
		return val, nil
	}
	if p.s.peek() == '*' {
		return nil, p.errorf("value", "%q is not a valid dict spread, use %q", "*", "**")
	}

	start := p.s.point()
	key, err := p.parseFilteredValue()
	if err != nil {
		return nil, err
	}
	if key.Kind == ValueList || key.Kind == ValueDict {
		return nil, p.errorf("value", "dict keys may not be of kind %s", key.Kind)
	}

	p.s.skipGap()
	if err := p.expectRune("value", ':'); err != nil {
		return nil, err
	}
	p.s.skipGap()
	val, err := p.parseFilteredValue()
	if err != nil {
		return nil, err
	}
	return &TagValue{
		Children: []*TagValue{key, val},
		Span:     p.s.spanFrom(start),
	}, nil
}

// parseNumber implements the int/float grammar:
// sign? (digits ("." digits?)? | "." digits) (("e"|"E") sign? digits)?  — a literal is a
// float if it carries a decimal point or an exponent, otherwise an int.
func (p *Parser) parseNumber() (*TagValue, error) {
	start := p.s.point()
	p.s.accept("+-")
	intDigits := p.s.acceptRun(digitChars)

	hasDot := false
	fracDigits := 0
	if p.s.peek() == '.' {
		p.s.next()
		hasDot = true
		fracDigits = p.s.acceptRun(digitChars)
	}

	hasExp := false
	if r := p.s.peek(); r == 'e' || r == 'E' {
		save := *p.s
		p.s.next()
		p.s.accept("+-")
		if p.s.acceptRun(digitChars) > 0 {
			hasExp = true
		} else {
			*p.s = save
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return nil, p.errorf("value", "malformed number literal")
	}

	kind := ValueInt
	if hasDot || hasExp {
		kind = ValueFloat
	}
	tok := TagToken{Text: p.s.src[start.Start:p.s.pos], Span: p.s.spanFrom(start)}
	return &TagValue{Token: tok, Kind: kind, Span: tok.Span}, nil
}

// parseVariable implements variable := ident ("." ident)*, a dotted
// identifier path stored as a single flat token (no per-segment structure
// is kept in the AST; the compiler never needs to address one segment).
func (p *Parser) parseVariable() (*TagValue, error) {
	start := p.s.point()
	p.s.next()
	p.s.acceptRun(identChars)
	for p.s.peek() == '.' {
		save := *p.s
		p.s.next()
		if !isIdentStart(p.s.peek()) {
			*p.s = save
			break
		}
		p.s.next()
		p.s.acceptRun(identChars)
	}
	tok := TagToken{Text: p.s.src[start.Start:p.s.pos], Span: p.s.spanFrom(start)}
	return &TagValue{Token: tok, Kind: ValueVariable, Span: tok.Span}, nil
}

// parseString reads a single- or double-quoted string literal, resolving
// backslash escapes (\\, \", \', \n, \t, \r), and returns both the raw
// token (quotes included, as written) and the decoded content.
func (p *Parser) parseString() (TagToken, string, error) {
	start := p.s.point()
	quote := p.s.next()
	if quote != '"' && quote != '\'' {
		return TagToken{}, "", p.errorf("value", "expected a quoted string")
	}

	var b strings.Builder
	for {
		r := p.s.peek()
		switch r {
		case eof:
			return TagToken{}, "", p.errorf("value", "unterminated string literal")
		case '\n':
			return TagToken{}, "", p.errorf("value", "newline not permitted in string literal")
		case quote:
			p.s.next()
			tok := TagToken{Text: p.s.src[start.Start:p.s.pos], Span: p.s.spanFrom(start)}
			return tok, b.String(), nil
		case '\\':
			p.s.next()
			esc := p.s.next()
			switch esc {
			case '\\', '"', '\'':
				b.WriteRune(esc)
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				return TagToken{}, "", p.errorf("value", "unknown escape sequence \\%c", esc)
			}
		default:
			p.s.next()
			b.WriteRune(r)
		}
	}
}

// parseStringLiteralValue wraps parseString into a TagValue, promoting its
// ValueKind from String to TemplateString when the decoded content embeds a
// complete {{ }}, {% %}, or {# #} construct. A string reached through
// parseTranslation never goes through here, so the "not inside a
// translation" exclusion falls out of the call graph rather than needing an
// explicit flag.
func (p *Parser) parseStringLiteralValue() (*TagValue, error) {
	tok, decoded, err := p.parseString()
	if err != nil {
		return nil, err
	}
	kind := ValueString
	if looksLikeTemplateString(decoded) {
		kind = ValueTemplateString
	}
	return &TagValue{Token: tok, Kind: kind, Span: tok.Span}, nil
}

// parseTranslation implements translation := "_(" gap? string gap? ")".
// Any whitespace between "_(" and the quoted body (and between the body and
// ")") is discarded: the stored token is reconstructed as "_(<quoted-body>)"
// using whichever quote character the source used first, so downstream code
// can pattern-match the canonical form without re-running the scanner.
func (p *Parser) parseTranslation() (*TagValue, error) {
	start := p.s.point()
	p.s.consume("_(")
	p.s.skipGap()
	strTok, _, err := p.parseString()
	if err != nil {
		return nil, err
	}
	p.s.skipGap()
	if err := p.expectRune("value", ')'); err != nil {
		return nil, err
	}
	sp := p.s.spanFrom(start)
	tok := TagToken{Text: "_(" + strTok.Text + ")", Span: sp}
	return &TagValue{Token: tok, Kind: ValueTranslation, Span: sp}, nil
}

// parseFilter implements filter := "|" gap? ident (gap? ":" gap? filter_arg)?,
// where filter_arg := filtered_value, so an argument may itself carry its
// own filter chain.
func (p *Parser) parseFilter() (*TagValueFilter, error) {
	start := p.s.point()
	p.s.next() // '|'
	p.s.skipGap()
	if !isIdentStart(p.s.peek()) {
		return nil, p.errorf("filter", "expected a filter name, got %q", p.s.tokenHere().Val)
	}
	nameStart := p.s.point()
	p.s.next()
	p.s.acceptRun(identChars)
	name := TagToken{Text: p.s.src[nameStart.Start:p.s.pos], Span: p.s.spanFrom(nameStart)}

	var arg *TagValue
	save := *p.s
	p.s.skipGap()
	if p.s.peek() == ':' {
		p.s.next()
		p.s.skipGap()
		a, err := p.parseFilteredValue()
		if err != nil {
			return nil, err
		}
		arg = a
	} else {
		*p.s = save
	}

	return &TagValueFilter{Name: name, Arg: arg, Span: p.s.spanFrom(start)}, nil
}
