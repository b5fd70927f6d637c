package tagdsl

import (
	"testing"

	gc "gopkg.in/check.v1"

	jujutesting "github.com/juju/testing"
)

// Hook gocheck into `go test`, the juju-ecosystem convention for mixing
// gocheck suites into the standard test runner.
func TestSuite(t *testing.T) {
	gc.TestingT(t)
}

// pipelineSuite exercises Parse followed by Compile end to end, one
// scenario per test method, the way the juju projects structure an
// IsolationSuite per logical area rather than one flat TestXxx function.
type pipelineSuite struct {
	jujutesting.IsolationSuite
}

var _ = gc.Suite(&pipelineSuite{})

func (s *pipelineSuite) parseAndCompile(c *gc.C, src string) (*Tag, string) {
	tag, err := Parse(src, nil)
	c.Assert(err, gc.IsNil)
	out, err := Compile(tag.Attrs)
	c.Assert(err, gc.IsNil)
	return tag, out
}

func (s *pipelineSuite) TestEmptyTagCompilesToEmptyCall(c *gc.C) {
	_, out := s.parseAndCompile(c, `{% slot %}`)
	want := "def compiled_func(context, *, template_string, translation, variable, filter):\n" +
		"    args = []\n" +
		"    kwargs = []\n" +
		"    return args, kwargs"
	c.Check(out, gc.Equals, want)
}

func (s *pipelineSuite) TestSelfClosingTagParsesFlag(c *gc.C) {
	tag, err := Parse(`{% slot / %}`, nil)
	c.Assert(err, gc.IsNil)
	c.Check(tag.IsSelfClosing, gc.Equals, true)
}

func (s *pipelineSuite) TestSpreadKwargsOrderPreserved(c *gc.C) {
	tag, out := s.parseAndCompile(c, `{% component a=1 ...rest b=2 %}`)
	c.Assert(tag.Attrs, gc.HasLen, 3)
	c.Check(tag.Attrs[0].Key.Text, gc.Equals, "a")
	c.Check(tag.Attrs[2].Key.Text, gc.Equals, "b")
	c.Check(out, gc.Matches, `(?s).*\('a', 1\).*_handle_spread\(variable\(context, 'rest'\).*\('b', 2\).*`)
}

func (s *pipelineSuite) TestPositionalAfterKeywordIsACompileTimeOnlyError(c *gc.C) {
	tag, err := Parse(`{% component a=1 2 %}`, nil)
	c.Assert(err, gc.IsNil, gc.Commentf("the grammar must accept this ordering"))
	_, err = Compile(tag.Attrs)
	c.Assert(err, gc.NotNil, gc.Commentf("but the compiler must reject it"))
}

func (s *pipelineSuite) TestFlagRecognitionIsCallerScoped(c *gc.C) {
	tag, err := Parse(`{% component required %}`, map[string]struct{}{"required": {}})
	c.Assert(err, gc.IsNil)
	c.Check(tag.Attrs[0].IsFlag, gc.Equals, true)

	tag, err = Parse(`{% component required %}`, nil)
	c.Assert(err, gc.IsNil)
	c.Check(tag.Attrs[0].IsFlag, gc.Equals, false)
}
