// Package events defines the one event shape every player action produces.
//
// TradeEvent is a closed variant: only the four types in this file implement
// it, so consumers type-switch over them exhaustively.
package events

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Action tags the variant of a TradeEvent
type Action string

const (
	ActionBuy               Action = "BUY"
	ActionSell              Action = "SELL"
	ActionPassengerDelivery Action = "PASSENGER_DELIVERY"
	ActionTravel            Action = "TRAVEL"
)

// Meta is carried by every event
type Meta struct {
	Location string `json:"location"`
	Turn     int    `json:"turn"`
}

// Header returns the location and turn of the event
func (m Meta) Header() Meta { return m }

// TradeEvent is implemented by BuyEvent, SellEvent, PassengerDeliveryEvent and TravelEvent
type TradeEvent interface {
	Action() Action
	Header() Meta
	sealed()
}

// BuyEvent is produced when cargo is bought at a location
type BuyEvent struct {
	Meta
	Commodity shared.Commodity `json:"commodity"`
	Amount    int              `json:"amount"`
}

func (BuyEvent) Action() Action { return ActionBuy }
func (BuyEvent) sealed()        {}

func (e BuyEvent) String() string {
	return fmt.Sprintf("buy %d %s at %s (turn %d)", e.Amount, e.Commodity, e.Location, e.Turn)
}

// SellEvent is produced when cargo is sold at a location
type SellEvent struct {
	Meta
	Commodity shared.Commodity `json:"commodity"`
	Amount    int              `json:"amount"`
}

func (SellEvent) Action() Action { return ActionSell }
func (SellEvent) sealed()        {}

func (e SellEvent) String() string {
	return fmt.Sprintf("sell %d %s at %s (turn %d)", e.Amount, e.Commodity, e.Location, e.Turn)
}

// PassengerDeliveryEvent is produced when passengers disembark at a location
type PassengerDeliveryEvent struct {
	Meta
	Count        int    `json:"count"`
	ClassCode    string `json:"class_code"`
	Satisfaction int    `json:"satisfaction"`
}

func (PassengerDeliveryEvent) Action() Action { return ActionPassengerDelivery }
func (PassengerDeliveryEvent) sealed()        {}

func (e PassengerDeliveryEvent) String() string {
	return fmt.Sprintf("deliver %d class %s passengers (satisfaction %d) at %s (turn %d)",
		e.Count, e.ClassCode, e.Satisfaction, e.Location, e.Turn)
}

// TravelEvent is produced on arrival; Location is the destination
type TravelEvent struct {
	Meta
	From string `json:"from"`
}

func (TravelEvent) Action() Action { return ActionTravel }
func (TravelEvent) sealed()        {}

func (e TravelEvent) String() string {
	return fmt.Sprintf("travel %s -> %s (turn %d)", e.From, e.Location, e.Turn)
}

// Validate rejects events that can never be meaningful
func Validate(e TradeEvent) error {
	h := e.Header()
	if h.Location == "" {
		return shared.NewValidationError("location", "event must name a location")
	}
	if h.Turn < 0 {
		return shared.NewValidationError("turn", "cannot be negative")
	}
	switch ev := e.(type) {
	case BuyEvent:
		return validateCargo(ev.Commodity, ev.Amount)
	case SellEvent:
		return validateCargo(ev.Commodity, ev.Amount)
	case PassengerDeliveryEvent:
		if ev.Count <= 0 {
			return fmt.Errorf("passenger count %d: %w", ev.Count, shared.ErrInvalidQuantity)
		}
		if ev.Satisfaction < 0 || ev.Satisfaction > 100 {
			return shared.NewValidationError("satisfaction", "must be within [0,100]")
		}
	case TravelEvent:
	}
	return nil
}

func validateCargo(c shared.Commodity, amount int) error {
	if !c.IsValid() {
		return fmt.Errorf("%q: %w", c, shared.ErrInvalidCommodity)
	}
	if amount <= 0 {
		return fmt.Errorf("amount %d: %w", amount, shared.ErrInvalidQuantity)
	}
	return nil
}
