package common

// MetricsRecorder receives simulation measurements. The prometheus adapter
// implements it; a nil recorder is replaced by NoOpMetrics.
type MetricsRecorder interface {
	RecordTurn(turn int)
	RecordPrice(location, commodity string, price int, banned bool)
	RecordBan(location, commodity string, turns int)
	RecordTrade(location, commodity, side string, quantity, credits int)
	RecordProduction(location, commodity string, units int)
	RecordObligationTransition(kind, from, to string)
	RecordFunds(funds int)
}

// NoOpMetrics discards every measurement
type NoOpMetrics struct{}

func (NoOpMetrics) RecordTurn(int)                                    {}
func (NoOpMetrics) RecordPrice(string, string, int, bool)             {}
func (NoOpMetrics) RecordBan(string, string, int)                     {}
func (NoOpMetrics) RecordTrade(string, string, string, int, int)      {}
func (NoOpMetrics) RecordProduction(string, string, int)              {}
func (NoOpMetrics) RecordObligationTransition(string, string, string) {}
func (NoOpMetrics) RecordFunds(int)                                   {}
