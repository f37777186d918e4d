package model

import (
	"strings"
	"time"
)

// PlayerKey identifies a player record. Players are unique per (email, area).
type PlayerKey struct {
	Email string
	Area  string
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeArea uppercases and trims an area code, e.g. "sw1" -> "SW1".
func NormalizeArea(area string) string {
	return strings.ToUpper(strings.TrimSpace(area))
}

// NewPlayerKey builds a normalized key from raw input.
func NewPlayerKey(email, area string) PlayerKey {
	return PlayerKey{
		Email: NormalizeEmail(email),
		Area:  NormalizeArea(area),
	}
}

// PlayerRecord is the durable per-(email, area) game state.
type PlayerRecord struct {
	Email        string
	Area         string
	Position     int
	RollsUsed    int
	RollsGranted int
	Completed    bool
	Reward       *int // nil until completion; set exactly once
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Key returns the record's identifying key.
func (p *PlayerRecord) Key() PlayerKey {
	return PlayerKey{Email: p.Email, Area: p.Area}
}

// AvailableRolls is the number of rolls the player may still use,
// clamped at zero.
func (p *PlayerRecord) AvailableRolls() int {
	if remaining := p.RollsGranted - p.RollsUsed; remaining > 0 {
		return remaining
	}
	return 0
}

// Clone returns a deep copy of the record.
func (p *PlayerRecord) Clone() *PlayerRecord {
	out := *p
	if p.Reward != nil {
		reward := *p.Reward
		out.Reward = &reward
	}
	return &out
}
