package model

// FinalSquare is the last square of the board; landing on it (or past it,
// after clamping) completes the game.
const FinalSquare = 30

// jumps maps each jump-source square to its destination. Ladders move the
// token forward, snakes move it backward. A square is never both.
var jumps = map[int]int{
	// ladders
	3:  22,
	5:  8,
	11: 26,
	20: 29,
	// snakes
	17: 4,
	19: 7,
	27: 1,
}

// ApplyJump returns the jump destination if square is a jump source,
// otherwise square unchanged.
func ApplyJump(square int) int {
	if dest, ok := jumps[square]; ok {
		return dest
	}
	return square
}

// ClampToFinal caps overshoot past the final square. Overshoot does not
// wrap or bounce.
func ClampToFinal(square int) int {
	if square > FinalSquare {
		return FinalSquare
	}
	return square
}

// ResolveLanding computes where a token ends up after moving die squares
// from position. Clamp happens first, then the jump lookup, so a jump
// source reached via overshoot still applies.
func ResolveLanding(position, die int) int {
	return ApplyJump(ClampToFinal(position + die))
}
