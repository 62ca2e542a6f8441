package repo_test

import (
	"os"
	"testing"

	"github.com/gopinathan2007/office-visitor-flow/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole package, so individual tests never need to think about schema state.
// Without TEST_DATABASE_URL every integration test skips itself.
func TestMain(m *testing.M) {
	testutil.MigrateForMain()
	os.Exit(m.Run())
}
