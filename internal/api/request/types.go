package request

// RegisterRequest is the body for POST /api/v1/players/register
type RegisterRequest struct {
	Email string `json:"email"`
	Area  string `json:"area"`
}

// LoginRequest is the body for POST /api/v1/players/login
type LoginRequest struct {
	Email string `json:"email"`
	Area  string `json:"area"`
}

// RollRequest is the body for POST /api/v1/players/roll
type RollRequest struct {
	Email string `json:"email"`
	Area  string `json:"area"`
}

// ResetPlayerRequest is the body for POST /api/v1/admin/players/reset
type ResetPlayerRequest struct {
	Email string `json:"email"`
	Area  string `json:"area"`
}

// GrantRequest is the body for POST /api/v1/admin/grants. An empty
// email list targets every player in the area.
type GrantRequest struct {
	Area   string   `json:"area"`
	Amount int      `json:"amount"`
	Emails []string `json:"emails"`
}

// UndoGrantRequest is the body for POST /api/v1/admin/grants/undo
type UndoGrantRequest struct {
	Area string `json:"area"`
}

// PrizeConfigRequest is the body for PUT /api/v1/admin/areas/{area}/prize
type PrizeConfigRequest struct {
	MaxHighTierWinners int `json:"max_high_tier_winners"`
}

// AdminLoginRequest is the body for POST /api/v1/admin/login
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body for POST /api/v1/admin/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
