package cli_test

import (
	"testing"

	"github.com/Konoa-1025/Cresta-Open-Data/testhelpers"
)

// TestMain builds the crestagit binary once so the tests in this package can
// run it against scene repositories.
func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}
