package ledger

import "fmt"

// TransactionType represents the type of financial transaction
type TransactionType string

const (
	// TransactionTypePurchaseCargo represents buying a commodity
	TransactionTypePurchaseCargo TransactionType = "PURCHASE_CARGO"

	// TransactionTypeSellCargo represents selling a commodity
	TransactionTypeSellCargo TransactionType = "SELL_CARGO"

	// TransactionTypeContractReward represents money paid out when a contract is claimed
	TransactionTypeContractReward TransactionType = "CONTRACT_REWARD"

	// TransactionTypeQuestReward represents money granted on quest completion
	TransactionTypeQuestReward TransactionType = "QUEST_REWARD"

	// TransactionTypeRepair represents hull repair
	TransactionTypeRepair TransactionType = "REPAIR"

	// TransactionTypeUpgrade represents a ship stat upgrade
	TransactionTypeUpgrade TransactionType = "UPGRADE"

	// TransactionTypePlatform represents building a mining platform
	TransactionTypePlatform TransactionType = "PLATFORM"

	// TransactionTypeConstruction represents constructing a building
	TransactionTypeConstruction TransactionType = "CONSTRUCTION"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypePurchaseCargo,
		TransactionTypeSellCargo,
		TransactionTypeContractReward,
		TransactionTypeQuestReward,
		TransactionTypeRepair,
		TransactionTypeUpgrade,
		TransactionTypePlatform,
		TransactionTypeConstruction,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
