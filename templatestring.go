package tagdsl

import (
	"regexp"
	"sync"
)

// templateStringPattern matches a complete {{ ... }}, {% ... %}, or
// {# ... #} construct — the signal that a plain string literal's content
// should be promoted to ValueTemplateString. Compiled lazily and cached
// rather than rebuilt per call.
var (
	templateStringOnce sync.Once
	templateStringRe   *regexp.Regexp
)

func templateStringPattern() *regexp.Regexp {
	templateStringOnce.Do(func() {
		templateStringRe = regexp.MustCompile(`\{\{.*?\}\}|\{%.*?%\}|\{#.*?#\}`)
	})
	return templateStringRe
}

// looksLikeTemplateString reports whether decoded (a string literal's
// already-unescaped content) embeds a complete template construct.
func looksLikeTemplateString(decoded string) bool {
	return templateStringPattern().MatchString(decoded)
}
