package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func sell(turn int) events.SellEvent {
	return events.SellEvent{
		Meta:      events.Meta{Location: "Mars", Turn: turn},
		Commodity: shared.CommoditySalt,
		Amount:    40,
	}
}

func TestEmit_DeliversInOrderToEverySubscriber(t *testing.T) {
	// Arrange
	emitter := events.NewEmitter(0)
	var first, second []uint64
	emitter.Subscribe(func(r events.Record) { first = append(first, r.Seq) })
	emitter.Subscribe(func(r events.Record) {
		// the first subscriber has already seen this record
		require.Equal(t, r.Seq, first[len(first)-1])
		second = append(second, r.Seq)
	})

	// Act
	emitter.Emit(sell(1))
	emitter.Emit(events.TravelEvent{Meta: events.Meta{Location: "Venus", Turn: 1}, From: "Mars"})
	rec := emitter.Emit(sell(2))

	// Assert
	assert.Equal(t, uint64(3), rec.Seq)
	assert.Equal(t, []uint64{1, 2, 3}, first)
	assert.Equal(t, []uint64{1, 2, 3}, second)
	assert.Equal(t, uint64(3), emitter.Seq())
}

func TestHistory_IsBounded(t *testing.T) {
	emitter := events.NewEmitter(2)

	for turn := 1; turn <= 5; turn++ {
		emitter.Emit(sell(turn))
	}

	history := emitter.History()
	require.Len(t, history, 2)
	assert.Equal(t, uint64(4), history[0].Seq)
	assert.Equal(t, uint64(5), history[1].Seq)
	assert.Equal(t, 5, history[1].Event.Header().Turn)
}

func TestReset_ContinuesSequence(t *testing.T) {
	emitter := events.NewEmitter(10)
	emitter.Emit(sell(1))

	emitter.Reset(41)

	assert.Empty(t, emitter.History())
	assert.Equal(t, uint64(42), emitter.Emit(sell(2)).Seq)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		event events.TradeEvent
		valid bool
	}{
		{"sell", sell(1), true},
		{"travel", events.TravelEvent{Meta: events.Meta{Location: "Venus"}, From: "Mars"}, true},
		{"missing location", events.BuyEvent{Commodity: shared.CommodityTech, Amount: 1}, false},
		{"negative turn", events.BuyEvent{Meta: events.Meta{Location: "Mars", Turn: -1}, Commodity: shared.CommodityTech, Amount: 1}, false},
		{"zero amount", events.BuyEvent{Meta: events.Meta{Location: "Mars"}, Commodity: shared.CommodityTech}, false},
		{"unknown commodity", events.SellEvent{Meta: events.Meta{Location: "Mars"}, Commodity: "GOLD", Amount: 3}, false},
		{"passengers", events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Mars"}, Count: 4, ClassCode: "A", Satisfaction: 90}, true},
		{"no passengers", events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Mars"}, ClassCode: "A"}, false},
		{"satisfaction above 100", events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Mars"}, Count: 1, Satisfaction: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := events.Validate(tt.event)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
