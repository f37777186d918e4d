package reward

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/promoarcade/snakesladders/internal/dependencies/mocks"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage/memory"
	"github.com/promoarcade/snakesladders/internal/testutil"
)

type AllocatorTestSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	ctx     context.Context
}

func (s *AllocatorTestSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()
}

func TestAllocatorTestSuite(t *testing.T) {
	suite.Run(t, new(AllocatorTestSuite))
}

func (s *AllocatorTestSuite) newAllocator(cfg Config) *Allocator {
	return New(s.storage, s.random, testutil.NopLogger(), cfg)
}

func (s *AllocatorTestSuite) setCap(area string, winners int) {
	s.Require().NoError(s.storage.SavePrizeConfig(s.ctx, &model.AreaPrizeConfig{
		Area:               area,
		MaxHighTierWinners: winners,
		UpdatedAt:          time.Now().UTC(),
	}))
}

func (s *AllocatorTestSuite) addWinner(email, area string, reward int) {
	now := time.Now().UTC()
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.PlayerRecord{
		Email:     email,
		Area:      area,
		Position:  model.FinalSquare,
		Completed: true,
		Reward:    &reward,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func (s *AllocatorTestSuite) TestUnconfiguredAreaGetsBaseTier() {
	allocator := s.newAllocator(DefaultConfig())

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)
}

func (s *AllocatorTestSuite) TestZeroCapGetsBaseTier() {
	s.setCap("NORTH", 0)
	allocator := s.newAllocator(DefaultConfig())

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)
}

func (s *AllocatorTestSuite) TestFirstNFillsSlotsThenFallsBack() {
	s.setCap("NORTH", 2)
	allocator := s.newAllocator(DefaultConfig())

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(25, amount)

	s.addWinner("first@example.com", "NORTH", 25)

	amount, err = allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(25, amount)

	s.addWinner("second@example.com", "NORTH", 25)

	amount, err = allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)
}

func (s *AllocatorTestSuite) TestBaseTierWinnersDoNotConsumeSlots() {
	s.setCap("NORTH", 1)
	allocator := s.newAllocator(DefaultConfig())

	s.addWinner("base1@example.com", "NORTH", 10)
	s.addWinner("base2@example.com", "NORTH", 10)

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(25, amount)
}

func (s *AllocatorTestSuite) TestCapsAreIndependentPerArea() {
	s.setCap("NORTH", 1)
	s.setCap("SOUTH", 1)
	allocator := s.newAllocator(DefaultConfig())

	s.addWinner("taken@example.com", "NORTH", 25)

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)

	amount, err = allocator.Allocate(s.ctx, "SOUTH")
	s.Require().NoError(err)
	s.Equal(25, amount)
}

func (s *AllocatorTestSuite) TestRandomChancePolicy() {
	s.setCap("NORTH", 5)

	cfg := DefaultConfig()
	cfg.Policy = PolicyRandomChance
	cfg.HighTierChance = 0.5
	allocator := s.newAllocator(cfg)

	s.random.QueueFloat64(0.3, 0.7)

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(25, amount)

	amount, err = allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)
}

func (s *AllocatorTestSuite) TestRandomChanceRespectsCap() {
	s.setCap("NORTH", 1)
	s.addWinner("taken@example.com", "NORTH", 25)

	cfg := DefaultConfig()
	cfg.Policy = PolicyRandomChance
	cfg.HighTierChance = 1.0
	allocator := s.newAllocator(cfg)

	amount, err := allocator.Allocate(s.ctx, "NORTH")
	s.Require().NoError(err)
	s.Equal(10, amount)
}
