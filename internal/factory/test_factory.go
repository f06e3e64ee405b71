package factory

import (
	"time"

	"github.com/mcoot/batepapo/internal/dependencies/mocks"
	"github.com/mcoot/batepapo/internal/storage/memory"
	"github.com/mcoot/batepapo/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App backed by memory storage and a mock clock
// set to 2024-01-01 12:00:00 UTC
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}
