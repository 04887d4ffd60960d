package contract

import "github.com/shopspring/decimal"

// RewardBundle is what a claim or a quest completion pays out
type RewardBundle struct {
	Money      int `json:"money"`
	Reputation int `json:"reputation"`
	PlotPoints int `json:"plot_points"`
}

// IsZero reports an empty bundle
func (r RewardBundle) IsZero() bool {
	return r.Money == 0 && r.Reputation == 0 && r.PlotPoints == 0
}

// Add sums two bundles
func (r RewardBundle) Add(o RewardBundle) RewardBundle {
	return RewardBundle{
		Money:      r.Money + o.Money,
		Reputation: r.Reputation + o.Reputation,
		PlotPoints: r.PlotPoints + o.PlotPoints,
	}
}

var (
	earlyMoneyBonus        = decimal.RequireFromString("1.5")
	earlyReputationBonus   = decimal.RequireFromString("1.2")
	overDeliveryMoneyBonus = decimal.RequireFromString("1.2")
	satisfactionRepBonus   = decimal.RequireFromString("1.3")

	// delivered must exceed 150% of the minimum
	overDeliveryThreshold = decimal.RequireFromString("1.5")
	// mean satisfaction must exceed 120% of the minimum
	satisfactionThreshold = decimal.RequireFromString("1.2")
)

// Bonuses lists the multipliers that applied to a final reward
type Bonuses struct {
	EarlyCompletion  bool `json:"early_completion"`
	OverDelivery     bool `json:"over_delivery"`
	HighSatisfaction bool `json:"high_satisfaction"`
}

// FinalReward computes the reward a completed contract pays on claim.
// It depends only on counters stored on the contract, so it can be shown
// before claiming.
func (c *Contract) FinalReward() (RewardBundle, Bonuses) {
	money := decimal.NewFromInt(int64(c.reward.Money))
	rep := decimal.NewFromInt(int64(c.reward.Reputation))
	var b Bonuses

	// half the duration or more still on the clock
	if c.completedWithRemaining*2 >= c.duration {
		b.EarlyCompletion = true
		money = money.Mul(earlyMoneyBonus)
		rep = rep.Mul(earlyReputationBonus)
	}

	if minimum, ok := c.minimumAmount(); ok {
		delivered := decimal.NewFromInt(int64(c.progress.Delivered))
		if delivered.GreaterThan(decimal.NewFromInt(int64(minimum)).Mul(overDeliveryThreshold)) {
			b.OverDelivery = true
			money = money.Mul(overDeliveryMoneyBonus)
		}
	}

	if req, ok := c.requirement.(PassengerRequirement); ok && c.progress.Passengers > 0 {
		mean := decimal.NewFromInt(int64(c.progress.SatisfactionSum)).
			Div(decimal.NewFromInt(int64(c.progress.Passengers)))
		if mean.GreaterThan(decimal.NewFromInt(int64(req.MinSatisfaction)).Mul(satisfactionThreshold)) {
			b.HighSatisfaction = true
			rep = rep.Mul(satisfactionRepBonus)
		}
	}

	return RewardBundle{
		Money:      int(money.Round(0).IntPart()),
		Reputation: int(rep.Round(0).IntPart()),
		PlotPoints: c.reward.PlotPoints,
	}, b
}

func (c *Contract) minimumAmount() (int, bool) {
	switch req := c.requirement.(type) {
	case CargoRequirement:
		return req.Amount, true
	case SpecialRequirement:
		return req.Amount, true
	}
	return 0, false
}
