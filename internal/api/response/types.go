package response

import (
	"time"

	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/services/game"
)

// Player represents a player's game state in API responses
type Player struct {
	Email          string `json:"email"`
	Area           string `json:"area"`
	Position       int    `json:"position"`
	RollsUsed      int    `json:"rolls_used"`
	RollsGranted   int    `json:"rolls_granted"`
	RollsAvailable int    `json:"rolls_available"`
	Completed      bool   `json:"completed"`
	Reward         *int   `json:"reward,omitempty"`
}

// PlayerFromModel converts a model.PlayerRecord to a response Player
func PlayerFromModel(p *model.PlayerRecord) Player {
	return Player{
		Email:          p.Email,
		Area:           p.Area,
		Position:       p.Position,
		RollsUsed:      p.RollsUsed,
		RollsGranted:   p.RollsGranted,
		RollsAvailable: p.AvailableRolls(),
		Completed:      p.Completed,
		Reward:         p.Reward,
	}
}

// PlayerList is the response for the admin player listing
type PlayerList struct {
	Area    string   `json:"area"`
	Players []Player `json:"players"`
}

// PlayerListFromModels converts a slice of records to a PlayerList
func PlayerListFromModels(area string, players []*model.PlayerRecord) PlayerList {
	out := PlayerList{
		Area:    area,
		Players: make([]Player, 0, len(players)),
	}
	for _, p := range players {
		out.Players = append(out.Players, PlayerFromModel(p))
	}
	return out
}

// Roll is the response for a resolved roll
type Roll struct {
	DieValue       int  `json:"die_value"`
	FromPosition   int  `json:"from_position"`
	ToPosition     int  `json:"to_position"`
	RollsUsed      int  `json:"rolls_used"`
	RollsGranted   int  `json:"rolls_granted"`
	RollsAvailable int  `json:"rolls_available"`
	Completed      bool `json:"completed"`
	Reward         *int `json:"reward,omitempty"`
}

// RollFromOutcome converts a game.RollOutcome to a response Roll
func RollFromOutcome(o *game.RollOutcome) Roll {
	available := o.RollsGranted - o.RollsUsed
	if available < 0 {
		available = 0
	}
	return Roll{
		DieValue:       o.DieValue,
		FromPosition:   o.FromPosition,
		ToPosition:     o.ToPosition,
		RollsUsed:      o.RollsUsed,
		RollsGranted:   o.RollsGranted,
		RollsAvailable: available,
		Completed:      o.Completed,
		Reward:         o.Reward,
	}
}

// Grant is the response for an applied grant
type Grant struct {
	Area           string   `json:"area"`
	Amount         int      `json:"amount"`
	AffectedEmails []string `json:"affected_emails"`
}

// UndoneGrant is the response for an undone grant
type UndoneGrant struct {
	GrantID        string   `json:"grant_id"`
	Area           string   `json:"area"`
	Amount         int      `json:"amount"`
	AffectedEmails []string `json:"affected_emails"`
}

// UndoneGrantFromRecord converts the consumed ledger entry
func UndoneGrantFromRecord(rec *model.GrantRecord) UndoneGrant {
	return UndoneGrant{
		GrantID:        rec.ID,
		Area:           rec.Area,
		Amount:         rec.Amount,
		AffectedEmails: rec.Emails,
	}
}

// PrizeConfig represents an area's prize configuration
type PrizeConfig struct {
	Area               string    `json:"area"`
	MaxHighTierWinners int       `json:"max_high_tier_winners"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PrizeConfigFromModel converts a model.AreaPrizeConfig
func PrizeConfigFromModel(c *model.AreaPrizeConfig) PrizeConfig {
	return PrizeConfig{
		Area:               c.Area,
		MaxHighTierWinners: c.MaxHighTierWinners,
		UpdatedAt:          c.UpdatedAt,
	}
}
