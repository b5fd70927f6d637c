package tagdsl

import (
	"fmt"
	"strings"
)

const positionalAfterKeywordMsg = "positional argument follows keyword argument"

// Compile turns a tag's attribute list into the text of a standalone
// callable, compiled_func(context, *, template_string, translation,
// variable, filter), implementing the equivalent positional/keyword call at
// runtime: it builds args/kwargs, expands spread markers, and composes
// filter chains. It never evaluates anything itself — Compile's only job is
// to produce correct source text; a runtime error is raised only by the
// generated code once executed elsewhere, never here.
func Compile(attrs []*TagAttr) (string, error) {
	if err := checkPositionalOrdering(attrs); err != nil {
		return "", err
	}

	body, needsHelper, err := compileBody(attrs)
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, "def compiled_func(context, *, template_string, translation, variable, filter):")
	if needsHelper {
		lines = append(lines, indentLines(handleSpreadHelperLines(), 1)...)
	}
	lines = append(lines, indent(1)+"args = []")
	lines = append(lines, indent(1)+"kwargs = []")
	lines = append(lines, indentLines(body, 1)...)
	lines = append(lines, indent(1)+"return args, kwargs")

	return strings.Join(lines, "\n"), nil
}

// checkPositionalOrdering enforces, at compile time, the half of the
// "positional must not follow keyword" invariant that is decidable from
// source order alone: once a "..."-spread has been seen, its runtime shape
// is what actually determines positional-vs-keyword placement, so the
// compile-time check defers to the runtime guard compileBody emits instead.
func checkPositionalOrdering(attrs []*TagAttr) error {
	kwargSeen := false
	spreadSeen := false
	for _, a := range attrs {
		if a.IsFlag {
			continue
		}
		switch {
		case a.IsSpread():
			spreadSeen = true
		case a.IsKwarg():
			kwargSeen = true
		default:
			if kwargSeen && !spreadSeen {
				return newCompileError("compiler", "%s", positionalAfterKeywordMsg)
			}
		}
	}
	return nil
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func indentLines(lines []string, level int) []string {
	out := make([]string, len(lines))
	prefix := indent(level)
	for i, l := range lines {
		out[i] = prefix + l
	}
	return out
}

// handleSpreadHelperLines is the body of the small runtime helper inlined
// once a "..." spread is present anywhere in the attribute list. It decides
// positional-vs-keyword from the spread value's own runtime shape: a mapping
// (anything exposing .keys()) extends kwargs, anything else is iterated into
// args — re-checking kwarg_seen first, since a non-mapping spread following
// an already-seen keyword is exactly the ordering violation source order
// alone could not catch.
func handleSpreadHelperLines() []string {
	return []string{
		"def _handle_spread(value, source, args, kwargs, kwarg_seen):",
		"    if hasattr(value, \"keys\"):",
		"        for k in value.keys():",
		"            kwargs.append((k, value[k]))",
		"        return True",
		"    if kwarg_seen:",
		"        raise TypeError(\"" + positionalAfterKeywordMsg + "\")",
		"    try:",
		"        args.extend(value)",
		"    except TypeError:",
		"        raise TypeError(\"cannot spread non-iterable value: %s\" % (source,))",
		"    return kwarg_seen",
	}
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// compileBody walks attrs in source order (skipping flags) and emits one or
// more lines per attribute: kwarg_seen tracks the compile-time keyword
// state; once a spread has been emitted, kwarg_seen also becomes a runtime
// variable in the generated code, seeded from whatever the compile-time
// value was at that point.
func compileBody(attrs []*TagAttr) ([]string, bool, error) {
	var body []string
	kwargSeen := false
	spreadSeen := false

	for i, a := range attrs {
		if a.IsFlag {
			traceEmit("compiler", i, "flag-omitted")
			continue
		}
		switch {
		case a.IsSpread():
			traceEmit("compiler", i, "spread")
			if !spreadSeen {
				body = append(body, fmt.Sprintf("kwarg_seen = %s", pyBool(kwargSeen)))
				spreadSeen = true
			}
			expr, err := compileValue(a.Value)
			if err != nil {
				return nil, false, err
			}
			body = append(body, fmt.Sprintf(
				"kwarg_seen = _handle_spread(%s, \"\"\"%s\"\"\", args, kwargs, kwarg_seen)",
				expr, a.Value.Token.Text,
			))
			kwargSeen = true
		case a.IsKwarg():
			traceEmit("compiler", i, "kwarg")
			expr, err := compileValue(a.Value)
			if err != nil {
				return nil, false, err
			}
			body = append(body, fmt.Sprintf("kwargs.append(('%s', %s))", a.Key.Text, expr))
			if spreadSeen {
				body = append(body, "kwarg_seen = True")
			}
			kwargSeen = true
		default:
			traceEmit("compiler", i, "positional")
			expr, err := compileValue(a.Value)
			if err != nil {
				return nil, false, err
			}
			if spreadSeen {
				body = append(body, "if kwarg_seen:")
				body = append(body, "    raise TypeError(\""+positionalAfterKeywordMsg+"\")")
			}
			body = append(body, fmt.Sprintf("args.append(%s)", expr))
		}
	}
	return body, spreadSeen, nil
}

// compileValue emits the expression for v's bare value, then wraps it in its
// filter chain: the chain composes left-to-right in the source but
// right-to-left in the emitted code, so the first filter ends up as the
// innermost call and the last filter wraps everything before it.
func compileValue(v *TagValue) (string, error) {
	expr, err := compileBareValue(v)
	if err != nil {
		return "", err
	}
	for _, f := range v.Filters {
		argExpr := "None"
		if f.Arg != nil {
			a, err := compileValue(f.Arg)
			if err != nil {
				return "", err
			}
			argExpr = a
		}
		expr = fmt.Sprintf("filter(context, '%s', %s, %s)", f.Name.Text, expr, argExpr)
	}
	return expr, nil
}

// compileBareValue implements the per-kind emission table: numbers and
// strings are emitted as written in the source; variables, template-strings
// and translations become calls to the runtime helpers the host supplies,
// with the dotted path or quoted literal carried through unchanged.
func compileBareValue(v *TagValue) (string, error) {
	switch v.Kind {
	case ValueInt, ValueFloat:
		return v.Token.Text, nil
	case ValueString:
		return v.Token.Text, nil
	case ValueVariable:
		return fmt.Sprintf("variable(context, '%s')", v.Token.Text), nil
	case ValueTemplateString:
		return fmt.Sprintf("template_string(context, %s)", v.Token.Text), nil
	case ValueTranslation:
		inner, err := translationInnerLiteral(v.Token.Text)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("translation(context, %s)", inner), nil
	case ValueList:
		return compileListValue(v)
	case ValueDict:
		return compileDictValue(v)
	default:
		return "", newCompileError("compiler", "unknown value kind %s", v.Kind)
	}
}

// translationInnerLiteral strips the canonical "_(" / ")" wrapper
// parseTranslation reconstructs around a translation token, leaving the
// quoted literal the "translation" runtime helper is called with.
func translationInnerLiteral(raw string) (string, error) {
	if !strings.HasPrefix(raw, "_(") || !strings.HasSuffix(raw, ")") {
		return "", newCompileError("compiler", "malformed translation token %q", raw)
	}
	return raw[2 : len(raw)-1], nil
}

func compileListValue(v *TagValue) (string, error) {
	parts := make([]string, 0, len(v.Children))
	for _, c := range v.Children {
		inner, err := compileValue(c)
		if err != nil {
			return "", err
		}
		if c.Spread == SpreadStar {
			inner = "*" + inner
		}
		parts = append(parts, inner)
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// compileDictValue emits each entry as "key: value", both sides compiled
// through the generic compileValue dispatch — a dict key carries the same
// filter chain and kind range as any other value, short of List or Dict.
func compileDictValue(v *TagValue) (string, error) {
	parts := make([]string, 0, len(v.Children))
	for _, entry := range v.Children {
		if entry.Spread == SpreadDblStar {
			inner, err := compileValue(entry)
			if err != nil {
				return "", err
			}
			parts = append(parts, "**"+inner)
			continue
		}
		if len(entry.Children) != 2 {
			return "", newCompileError("compiler", "malformed dict entry")
		}
		keyExpr, err := compileValue(entry.Children[0])
		if err != nil {
			return "", err
		}
		valExpr, err := compileValue(entry.Children[1])
		if err != nil {
			return "", err
		}
		parts = append(parts, keyExpr+": "+valExpr)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}
