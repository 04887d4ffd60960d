package contract

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/tax"
)

// ProfitabilityContext contains the market and ship data needed to price a contract
type ProfitabilityContext struct {
	// SourcePrice is the current buy price of the commodity at the source
	SourcePrice      int
	// DestinationPrice is the current sell price at the (first) destination
	DestinationPrice int
	BuyTaxRate       float64
	SellTaxRate      float64
	CargoCapacity    int
}

// ProfitabilityEvaluation contains the results of profitability calculation
type ProfitabilityEvaluation struct {
	IsProfitable  bool
	NetProfit     int
	RewardMoney   int
	PurchaseCost  int
	ResaleValue   int
	TripsRequired int
	Reason        string
}

// ContractProfitabilityService estimates what fulfilling a contract nets the
// player at current prices. It is advisory only: prices move every turn.
type ContractProfitabilityService struct{}

// NewContractProfitabilityService creates a new profitability service
func NewContractProfitabilityService() *ContractProfitabilityService {
	return &ContractProfitabilityService{}
}

// EvaluateProfitability prices a contract.
//
// Business Rules:
//   - units = required amount - delivered so far
//   - purchase_cost = taxed buy cost of units at the source
//   - resale_value = taxed sell proceeds of units at the destination
//   - trips_required = ceil(units / cargo_capacity)
//   - net_profit = base reward money + resale_value - purchase_cost
//
// Passenger contracts have no cargo leg, so net profit is the reward money.
func (s *ContractProfitabilityService) EvaluateProfitability(c *Contract, ctx ProfitabilityContext) (*ProfitabilityEvaluation, error) {
	eval := &ProfitabilityEvaluation{RewardMoney: c.reward.Money}

	if amount, ok := c.minimumAmount(); ok {
		units := amount - c.progress.Delivered
		if units > 0 {
			if ctx.SourcePrice <= 0 || ctx.DestinationPrice <= 0 {
				return nil, fmt.Errorf("missing market price for contract %s", c.id)
			}
			eval.PurchaseCost = tax.BuyCost(units, ctx.SourcePrice, ctx.BuyTaxRate)
			eval.ResaleValue = tax.SellProceeds(units, ctx.DestinationPrice, ctx.SellTaxRate)
			eval.TripsRequired = s.calculateTripsRequired(units, ctx.CargoCapacity)
		}
	}

	eval.NetProfit = eval.RewardMoney + eval.ResaleValue - eval.PurchaseCost
	eval.IsProfitable = eval.NetProfit > 0
	eval.Reason = s.generateProfitabilityReason(eval)
	return eval, nil
}

// calculateTripsRequired computes the number of trips needed (ceiling division)
func (s *ContractProfitabilityService) calculateTripsRequired(units, cargoCapacity int) int {
	if cargoCapacity > 0 && units > 0 {
		return (units + cargoCapacity - 1) / cargoCapacity
	}
	return 0
}

func (s *ContractProfitabilityService) generateProfitabilityReason(eval *ProfitabilityEvaluation) string {
	switch {
	case !eval.IsProfitable:
		return "Loss at current prices"
	case eval.TripsRequired > 1:
		return fmt.Sprintf("Profitable over %d trips", eval.TripsRequired)
	default:
		return "Profitable"
	}
}
