package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Roll:
		o.printRoll(v)
	case PlayerList:
		o.printPlayerList(v)
	case GrantResult:
		o.printGrantResult(v)
	case UndoneGrant:
		o.printUndoneGrant(v)
	case PrizeConfig:
		o.printPrizeConfig(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// Roll response type
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

// PlayerList response type
type PlayerList struct {
	Area    string   `json:"area"`
	Players []Player `json:"players"`
}

// GrantResult response type
type GrantResult struct {
	Area           string   `json:"area"`
	Amount         int      `json:"amount"`
	AffectedEmails []string `json:"affected_emails"`
}

// UndoneGrant response type
type UndoneGrant struct {
	GrantID        string   `json:"grant_id"`
	Area           string   `json:"area"`
	Amount         int      `json:"amount"`
	AffectedEmails []string `json:"affected_emails"`
}

// PrizeConfig response type
type PrizeConfig struct {
	Area               string `json:"area"`
	MaxHighTierWinners int    `json:"max_high_tier_winners"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Email, p.Area)
	fmt.Printf("Position: %d\n", p.Position)
	fmt.Printf("Rolls: %d used / %d granted (%d available)\n", p.RollsUsed, p.RollsGranted, p.RollsAvailable)
	if p.Completed {
		fmt.Println("Completed: yes")
		if p.Reward != nil {
			fmt.Printf("Reward: %d\n", *p.Reward)
		}
	} else {
		fmt.Println("Completed: no")
	}
}

func (o *Output) printRoll(r Roll) {
	fmt.Printf("Rolled a %d: %d -> %d\n", r.DieValue, r.FromPosition, r.ToPosition)
	fmt.Printf("Rolls remaining: %d\n", r.RollsAvailable)
	if r.Completed {
		fmt.Println("Finished!")
		if r.Reward != nil {
			fmt.Printf("Reward: %d\n", *r.Reward)
		}
	}
}

func (o *Output) printPlayerList(l PlayerList) {
	fmt.Printf("Area %s (%d players):\n", l.Area, len(l.Players))
	for _, p := range l.Players {
		status := fmt.Sprintf("pos %d, %d/%d rolls", p.Position, p.RollsUsed, p.RollsGranted)
		if p.Completed {
			status = "completed"
			if p.Reward != nil {
				status = fmt.Sprintf("completed, reward %d", *p.Reward)
			}
		}
		fmt.Printf("  - %s: %s\n", p.Email, status)
	}
}

func (o *Output) printGrantResult(g GrantResult) {
	verb := "Granted"
	amount := g.Amount
	if amount < 0 {
		verb = "Revoked"
		amount = -amount
	}
	fmt.Printf("%s %d roll(s) in %s\n", verb, amount, g.Area)
	fmt.Printf("Affected (%d): %s\n", len(g.AffectedEmails), strings.Join(g.AffectedEmails, ", "))
}

func (o *Output) printUndoneGrant(g UndoneGrant) {
	fmt.Printf("Undid grant %s in %s (amount %d)\n", g.GrantID, g.Area, g.Amount)
	fmt.Printf("Affected (%d): %s\n", len(g.AffectedEmails), strings.Join(g.AffectedEmails, ", "))
}

func (o *Output) printPrizeConfig(c PrizeConfig) {
	fmt.Printf("Area: %s\n", c.Area)
	fmt.Printf("Max high-tier winners: %d\n", c.MaxHighTierWinners)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
