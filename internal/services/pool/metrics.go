package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	depositsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockpool_deposits_total",
		Help: "Number of successful deposits.",
	})

	withdrawalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockpool_withdrawals_total",
		Help: "Number of successful withdrawals.",
	})

	depositedUnitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockpool_deposited_units_total",
		Help: "Cumulative deposited principal, in base units.",
	})

	penaltyUnitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lockpool_penalty_units_total",
		Help: "Cumulative penalty value redistributed to stakers, in base units.",
	})

	poolPrincipal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lockpool_pool_principal_units",
		Help: "Current total staked principal, in base units.",
	})

	poolFeePool = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lockpool_fee_pool_units",
		Help: "Fee value distributed but not yet harvested, in base units.",
	})
)
