package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/snakyhub/internal/dependencies/mocks"
	"github.com/mcoot/snakyhub/internal/services/auth"
	"github.com/mcoot/snakyhub/internal/storage"
	"github.com/mcoot/snakyhub/internal/storage/memory"
	"github.com/mcoot/snakyhub/internal/testutil"
)

// TestSecret signs tokens issued by test apps
const TestSecret = "snaky-test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an App configured for testing with mocked dependencies
// Storage is an empty in-memory store
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage is NewTestApp over a caller-supplied backend
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	authCfg := auth.Config{
		Secret:   TestSecret,
		TokenTTL: 7 * 24 * time.Hour,
		HashCost: bcrypt.MinCost,
	}
	app := newWithDependencies(store, mockClock, mockIDs, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}
