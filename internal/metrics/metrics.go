package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovementsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crateledger_movements_recorded_total",
		Help: "Movements accepted by the reconciliation engine, by kind.",
	}, []string{"kind"})

	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crateledger_movements_rejected_total",
		Help: "Movements rejected by the reconciliation engine, by reason.",
	}, []string{"reason"})

	LostCrates = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crateledger_lost_crates",
		Help: "Crates loaned out past the lost threshold at the last scan.",
	})
)
