package tokenizer

import (
	"testing"
	"unicode"

	check "gopkg.in/check.v1"
)

// Initialize and register a pointer instance of the tokenizerTestSuite
// to be executed by check testing package.
var _ = check.Suite(new(tokenizerTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type tokenizerTestSuite struct{}

func (s *tokenizerTestSuite) TestTokenizeFiltersAndCounts(c *check.C) {
	terms := Tokenize("the Cat sat on THE mat")

	c.Assert(terms, check.DeepEquals, map[string]int{
		"cat": 1,
		"sat": 1,
		"mat": 1,
	})
}

func (s *tokenizerTestSuite) TestTokenizeCountsRepeatedTerms(c *check.C) {
	terms := Tokenize("telescope, telescope; GALAXY telescope galaxy")

	c.Assert(terms, check.DeepEquals, map[string]int{
		"telescope": 3,
		"galaxy":    2,
	})
}

func (s *tokenizerTestSuite) TestTokenizeNormalizesSeparatorRuns(c *check.C) {
	terms := Tokenize("astro--nomy...telescopes!!observe(galaxies)")

	c.Assert(terms, check.DeepEquals, map[string]int{
		"astro":      1,
		"nomy":       1,
		"telescopes": 1,
		"observe":    1,
		"galaxies":   1,
	})
}

func (s *tokenizerTestSuite) TestTokenizeEmptyAndDegenerateInput(c *check.C) {
	c.Assert(len(Tokenize("")), check.Equals, 0)
	c.Assert(len(Tokenize("   \t\n  ")), check.Equals, 0)
	c.Assert(len(Tokenize("!!! ... --- ???")), check.Equals, 0)
	c.Assert(len(Tokenize("the and but a of")), check.Equals, 0)
}

func (s *tokenizerTestSuite) TestTokenizeOutputProperties(c *check.C) {
	terms := Tokenize(
		"The QUICK brown fox, version 2.0, jumped over 42 lazy-dogs; " +
			"it was not impressed!",
	)

	for term := range terms {
		c.Assert(len(term) >= MinTermLength, check.Equals, true,
			check.Commentf("term %q is too short", term))

		_, isStopword := stopwords[term]
		c.Assert(isStopword, check.Equals, false,
			check.Commentf("term %q is a stopword", term))

		for _, r := range term {
			c.Assert(unicode.IsUpper(r), check.Equals, false,
				check.Commentf("term %q is not lowercased", term))
			c.Assert(isSeparator(r), check.Equals, false,
				check.Commentf("term %q contains a separator", term))
		}
	}
}

func (s *tokenizerTestSuite) TestTokenizeIsDeterministic(c *check.C) {
	input := "Astronomy telescopes observe galaxies; astronomy is fun."

	c.Assert(Tokenize(input), check.DeepEquals, Tokenize(input))
}

func (s *tokenizerTestSuite) TestNormalizeTerm(c *check.C) {
	c.Assert(NormalizeTerm("Telescope"), check.Equals, "telescope")
	c.Assert(NormalizeTerm("  tele-scope! "), check.Equals, "telescope")
	c.Assert(NormalizeTerm("!!!"), check.Equals, "")
	c.Assert(NormalizeTerm(""), check.Equals, "")
}
