package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
)

// credits renders an amount with thousands separators
func credits(amount int) string {
	return humanize.Comma(int64(amount)) + " cr"
}

// signedCredits renders income with a leading plus
func signedCredits(amount int) string {
	if amount > 0 {
		return "+" + credits(amount)
	}
	return credits(amount)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func formatReward(r contract.RewardBundle) string {
	parts := []string{credits(r.Money)}
	if r.Reputation != 0 {
		parts = append(parts, fmt.Sprintf("%+d rep", r.Reputation))
	}
	if r.PlotPoints != 0 {
		parts = append(parts, fmt.Sprintf("%+d plot", r.PlotPoints))
	}
	return strings.Join(parts, ", ")
}

// printTransitions reports obligation state changes caused by an action
func printTransitions(transitions []obligation.Transition) {
	for _, t := range transitions {
		line := fmt.Sprintf("  %s %q: %s -> %s", strings.ToLower(string(t.Kind)), t.Title, t.From, t.To)
		if !t.Reward.IsZero() {
			line += fmt.Sprintf(" (reward: %s)", formatReward(t.Reward))
		}
		if t.Penalty > 0 {
			line += fmt.Sprintf(" (penalty: -%d rep)", t.Penalty)
		}
		fmt.Println(line)
	}
}
