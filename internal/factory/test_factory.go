package factory

import (
	"context"
	"time"

	"github.com/promoarcade/snakesladders/internal/dependencies/mocks"
	"github.com/promoarcade/snakesladders/internal/services/adminauth"
	"github.com/promoarcade/snakesladders/internal/services/game"
	"github.com/promoarcade/snakesladders/internal/services/reward"
	"github.com/promoarcade/snakesladders/internal/storage/memory"
	"github.com/promoarcade/snakesladders/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The admin credential is bootstrapped with the default username/password.
func NewTestApp() (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom,
		game.DefaultConfig(), reward.DefaultConfig(), testutil.NopLogger())

	if err := app.AuthService.Bootstrap(context.Background(), adminauth.DefaultConfig()); err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}
