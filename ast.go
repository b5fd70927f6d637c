package tagdsl

import "github.com/kr/pretty"

// ValueKind classifies a TagValue. The zero value is ValueInt.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueString
	ValueVariable
	ValueTemplateString
	ValueTranslation
	ValueList
	ValueDict
)

func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueVariable:
		return "variable"
	case ValueTemplateString:
		return "template_string"
	case ValueTranslation:
		return "translation"
	case ValueList:
		return "list"
	case ValueDict:
		return "dict"
	default:
		return "unknown"
	}
}

// TagSyntax names the bracket dialect a Tag was parsed under. The grammar in
// this package only ever produces SyntaxDefault; SyntaxReserved is carried so
// a sibling dialect can be added later without reshaping the AST.
type TagSyntax int

const (
	SyntaxDefault TagSyntax = iota
	SyntaxReserved
)

func (s TagSyntax) String() string {
	switch s {
	case SyntaxDefault:
		return "default"
	case SyntaxReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// Spread names which expansion sigil, if any, prefixes a value.
type Spread string

const (
	NoSpread       Spread = ""
	SpreadDots     Spread = "..."
	SpreadStar     Spread = "*"
	SpreadDblStar  Spread = "**"
)

// Len returns the number of bytes the sigil occupies, used to compute the
// spread-offset law (spec property 2).
func (s Spread) Len() int {
	return len(string(s))
}

// TagToken is a bare identifier-like token (tag name, attribute key, filter
// name, or a value's un-adorned text) plus its position. Unlike TagValue's
// outer span, a TagToken's span never includes filters or spread sigils.
type TagToken struct {
	Text string
	Span Span
}

func (t TagToken) Equal(o TagToken) bool {
	return t.Text == o.Text && t.Span == o.Span
}

// TagValueFilter is one `|name` or `|name:arg` link in a filter chain.
// Span includes the leading `|`.
type TagValueFilter struct {
	Name TagToken
	Arg  *TagValue
	Span Span
}

func (f *TagValueFilter) Equal(o *TagValueFilter) bool {
	if f == nil || o == nil {
		return f == o
	}
	if !f.Name.Equal(o.Name) || f.Span != o.Span {
		return false
	}
	if (f.Arg == nil) != (o.Arg == nil) {
		return false
	}
	if f.Arg == nil {
		return true
	}
	return f.Arg.Equal(o.Arg)
}

// TagValue is a scalar, variable, translation, template-string, list or dict
// value, with an optional spread prefix and an ordered filter chain.
//
// Token is the bare head (excluding filters and spread); Span is the full
// extent (including filters and spread). When there are no filters and no
// spread, Token.Span == Span.
type TagValue struct {
	Token    TagToken
	Kind     ValueKind
	Children []*TagValue
	Spread   Spread
	Filters  []*TagValueFilter
	Span     Span
}

func (v *TagValue) Equal(o *TagValue) bool {
	if v == nil || o == nil {
		return v == o
	}
	if !v.Token.Equal(o.Token) || v.Kind != o.Kind || v.Spread != o.Spread || v.Span != o.Span {
		return false
	}
	if len(v.Children) != len(o.Children) || len(v.Filters) != len(o.Filters) {
		return false
	}
	for i := range v.Children {
		if !v.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	for i := range v.Filters {
		if !v.Filters[i].Equal(o.Filters[i]) {
			return false
		}
	}
	return true
}

// IsSpread reports whether v carries any spread sigil.
func (v *TagValue) IsSpread() bool {
	return v != nil && v.Spread != NoSpread
}

// TagAttr is a single tag attribute: `key=value`, `...value`, `value`, or a
// positional value recognised as a flag.
type TagAttr struct {
	Key    *TagToken
	Value  *TagValue
	IsFlag bool
	Span   Span
}

// IsKwarg reports whether this attribute carries an explicit key.
func (a *TagAttr) IsKwarg() bool {
	return a.Key != nil
}

// IsSpread reports whether this attribute is a bare `...value` spread, as
// opposed to a plain positional value. Top-level attributes only ever carry
// the "..." sigil — "*" and "**" are list- and dict-internal concepts, never
// valid at attribute position.
func (a *TagAttr) IsSpread() bool {
	return a.Key == nil && a.Value != nil && a.Value.Spread == SpreadDots
}

// IsPositional reports whether this attribute is a plain positional value
// (no key, no spread). A flag is also positional.
func (a *TagAttr) IsPositional() bool {
	return a.Key == nil && !a.IsSpread()
}

func (a *TagAttr) Equal(o *TagAttr) bool {
	if a == nil || o == nil {
		return a == o
	}
	if (a.Key == nil) != (o.Key == nil) {
		return false
	}
	if a.Key != nil && !a.Key.Equal(*o.Key) {
		return false
	}
	return a.Value.Equal(o.Value) && a.IsFlag == o.IsFlag && a.Span == o.Span
}

// Tag is the root AST node for one parsed `{% name attr... %}` directive.
type Tag struct {
	Name           TagToken
	Attrs          []*TagAttr
	IsSelfClosing  bool
	Syntax         TagSyntax
	Span           Span
}

func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.Name.Equal(o.Name) || t.IsSelfClosing != o.IsSelfClosing || t.Syntax != o.Syntax || t.Span != o.Span {
		return false
	}
	if len(t.Attrs) != len(o.Attrs) {
		return false
	}
	for i := range t.Attrs {
		if !t.Attrs[i].Equal(o.Attrs[i]) {
			return false
		}
	}
	return true
}

// String renders a canonical, field-complete debug dump of the node using
// kr/pretty. This is a diagnostic aid, not part of the parser or compiler's
// functional contract.
func (t *Tag) String() string {
	return pretty.Sprint(t)
}

func (v *TagValue) String() string {
	return pretty.Sprint(v)
}

func (a *TagAttr) String() string {
	return pretty.Sprint(a)
}
