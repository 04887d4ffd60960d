package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector implements common.MetricsRecorder with
// Prometheus gauges and counters
type SimulationMetricsCollector struct {
	// Turn progression
	currentTurn prometheus.Gauge
	turnsTotal  prometheus.Counter

	// Market dynamics
	commodityPrice  *prometheus.GaugeVec
	commodityBanned *prometheus.GaugeVec
	bansTotal       *prometheus.CounterVec
	banDuration     prometheus.Histogram

	// Trading
	tradesTotal  *prometheus.CounterVec
	tradeUnits   *prometheus.CounterVec
	tradeCredits *prometheus.CounterVec

	// Production
	productionUnits *prometheus.CounterVec

	// Obligations
	obligationTransitions *prometheus.CounterVec

	// Finances
	shipFunds prometheus.Gauge
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		currentTurn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_turn",
			Help:      "Turn number of the running game",
		}),

		turnsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "turns_total",
			Help:      "Total number of turns advanced",
		}),

		commodityPrice: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commodity_price",
				Help:      "Current price of a commodity at a location (0 while not tradeable)",
			},
			[]string{"location", "commodity"},
		),

		commodityBanned: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commodity_banned",
				Help:      "1 while trading the commodity is banned at the location",
			},
			[]string{"location", "commodity"},
		),

		bansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bans_total",
				Help:      "Total number of trade bans imposed",
			},
			[]string{"location", "commodity"},
		),

		banDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ban_duration_turns",
			Help:      "Length of imposed trade bans in turns",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),

		tradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trades_total",
				Help:      "Total number of trades by side",
			},
			[]string{"location", "commodity", "side"},
		),

		tradeUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_units_total",
				Help:      "Total units traded by side",
			},
			[]string{"location", "commodity", "side"},
		),

		tradeCredits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_credits_total",
				Help:      "Total credits paid (buy) or received (sell), taxes included",
			},
			[]string{"side"},
		),

		productionUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "production_units_total",
				Help:      "Total units extracted into location markets",
			},
			[]string{"location", "commodity"},
		),

		obligationTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "obligation_transitions_total",
				Help:      "Total contract and quest state transitions",
			},
			[]string{"kind", "from", "to"},
		),

		shipFunds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "ship_funds",
			Help:      "Current credits held by the ship",
		}),
	}
}

// Register registers all metrics with the global registry
func (c *SimulationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.currentTurn,
		c.turnsTotal,
		c.commodityPrice,
		c.commodityBanned,
		c.bansTotal,
		c.banDuration,
		c.tradesTotal,
		c.tradeUnits,
		c.tradeCredits,
		c.productionUnits,
		c.obligationTransitions,
		c.shipFunds,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *SimulationMetricsCollector) RecordTurn(turn int) {
	c.currentTurn.Set(float64(turn))
	c.turnsTotal.Inc()
}

func (c *SimulationMetricsCollector) RecordPrice(location, commodity string, price int, banned bool) {
	c.commodityPrice.WithLabelValues(location, commodity).Set(float64(price))
	flag := 0.0
	if banned {
		flag = 1
	}
	c.commodityBanned.WithLabelValues(location, commodity).Set(flag)
}

func (c *SimulationMetricsCollector) RecordBan(location, commodity string, turns int) {
	c.bansTotal.WithLabelValues(location, commodity).Inc()
	c.banDuration.Observe(float64(turns))
}

func (c *SimulationMetricsCollector) RecordTrade(location, commodity, side string, quantity, credits int) {
	c.tradesTotal.WithLabelValues(location, commodity, side).Inc()
	c.tradeUnits.WithLabelValues(location, commodity, side).Add(float64(quantity))
	if credits > 0 {
		c.tradeCredits.WithLabelValues(side).Add(float64(credits))
	}
}

func (c *SimulationMetricsCollector) RecordProduction(location, commodity string, units int) {
	if units > 0 {
		c.productionUnits.WithLabelValues(location, commodity).Add(float64(units))
	}
}

func (c *SimulationMetricsCollector) RecordObligationTransition(kind, from, to string) {
	c.obligationTransitions.WithLabelValues(kind, from, to).Inc()
}

func (c *SimulationMetricsCollector) RecordFunds(funds int) {
	c.shipFunds.Set(float64(funds))
}
