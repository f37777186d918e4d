package model

import "time"

// GrantRecord is one ledger entry for an administrative bulk roll grant.
// Emails holds the players that were actually modified, not the requested
// set, so an undo reverses exactly what the grant did.
type GrantRecord struct {
	ID        string
	Area      string
	Emails    []string
	Amount    int // signed; negative revokes
	CreatedAt time.Time
}

// AreaPrizeConfig caps how many high-tier rewards an area may issue.
type AreaPrizeConfig struct {
	Area               string
	MaxHighTierWinners int
	UpdatedAt          time.Time
}

// AdminCredential is the single administrator login.
type AdminCredential struct {
	Username     string
	PasswordHash string // bcrypt hash
	UpdatedAt    time.Time
}
