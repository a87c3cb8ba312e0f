package handicapintegrationtests

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/golf-scoring/integration_tests/testutils"
)

func TestMain(m *testing.M) {
	old := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", "test")

	code := m.Run()

	testutils.Teardown()
	os.Setenv("APP_ENV", old)
	os.Exit(code)
}
