package ledger

import "fmt"

// Category represents the cash flow category for financial reporting
type Category string

const (
	CategoryTradingRevenue    Category = "TRADING_REVENUE"
	CategoryTradingCosts      Category = "TRADING_COSTS"
	CategoryObligationRevenue Category = "OBLIGATION_REVENUE"
	CategoryShipMaintenance   Category = "SHIP_MAINTENANCE"
	CategoryInfrastructure    Category = "INFRASTRUCTURE"
)

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypePurchaseCargo:  CategoryTradingCosts,
	TransactionTypeSellCargo:      CategoryTradingRevenue,
	TransactionTypeContractReward: CategoryObligationRevenue,
	TransactionTypeQuestReward:    CategoryObligationRevenue,
	TransactionTypeRepair:         CategoryShipMaintenance,
	TransactionTypeUpgrade:        CategoryShipMaintenance,
	TransactionTypePlatform:       CategoryInfrastructure,
	TransactionTypeConstruction:   CategoryInfrastructure,
}

func (c Category) String() string {
	return string(c)
}

// AllCategories returns every reporting category in display order
func AllCategories() []Category {
	return []Category{
		CategoryTradingRevenue,
		CategoryTradingCosts,
		CategoryObligationRevenue,
		CategoryShipMaintenance,
		CategoryInfrastructure,
	}
}

// ParseCategory parses a category name
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %s", s)
}
