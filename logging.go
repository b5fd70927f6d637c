package tagdsl

import "github.com/juju/loggo"

// log is the package logger, built on github.com/juju/loggo. It is silent
// by default: loggo only emits Tracef records once a caller raises this
// logger's level, e.g. with SetTraceLevel(true) below.
var log = loggo.GetLogger("tagdsl")

// SetTraceLevel toggles trace-level logging of the parser's value-kind
// dispatch decisions and the compiler's emission steps. Off by default. This is
// a diagnostic aid only; it never changes what Parse or Compile return.
func SetTraceLevel(on bool) {
	if on {
		log.SetLogLevel(loggo.TRACE)
	} else {
		log.SetLogLevel(loggo.UNSPECIFIED)
	}
}

func traceBacktrack(production, chosen string) {
	log.Tracef("grammar: %s -> %s", production, chosen)
}

func traceEmit(sender string, attrIdx int, branch string) {
	log.Tracef("compile[%d]: %s -> %s", attrIdx, sender, branch)
}

