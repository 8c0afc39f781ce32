// Copyright (c) 2025 Michael Chen.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "math"

// VotingPower derives the total vote budget from a builder score and token
// holdings:
//
//	floor(builderScore * sqrt(talentHoldings))
//
// Fractional votes are invalid, so the budget ceiling always rounds down.
// Non-positive inputs yield 0; the function never panics.
func VotingPower(builderScore, talentHoldings float64) int64 {
	if builderScore <= 0 || talentHoldings <= 0 {
		return 0
	}

	power := builderScore * math.Sqrt(talentHoldings)
	if math.IsNaN(power) {
		return 0
	}
	if power >= math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(math.Floor(power))
}
