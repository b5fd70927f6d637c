// Package tagdsl parses a single Django-component-style tag —
// `{% name attr... %}` — into a positioned AST and compiles that AST into
// the textual source of a Python callable performing the equivalent
// positional/keyword call.
//
// A tiny example:
//
//	tag, err := tagdsl.Parse(`{% component "card" title=name ...extra %}`, nil)
//	if err != nil {
//	    panic(err)
//	}
//	src, err := tagdsl.Compile(tag.Attrs)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(src)
//
// Parse never evaluates anything: it only builds the AST and reports
// lexical/grammar errors. Compile never evaluates anything either: it only
// emits source text and reports the compile-time half of the
// positional-after-keyword invariant. Errors raised by the code Compile
// produces, once that code actually runs, are outside this package's
// concern.
package tagdsl
