package memory

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/ikumen/read-it-later/index/indextest"
)

// Initialize and register a pointer instance of the inMemoryIndexTestSuite
// to be executed by check testing package.
var _ = check.Suite(new(inMemoryIndexTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// inMemoryIndexTestSuite embeds and runs the BaseSuite tests methods.
type inMemoryIndexTestSuite struct {
	indextest.BaseSuite
}

// SetUpTest runs before each test in the test suite. it's
// responsible for setting up a clean posting store instance for that
// specific test.
func (s *inMemoryIndexTestSuite) SetUpTest(c *check.C) {
	s.SetStore(NewInMemoryIndex())
}
