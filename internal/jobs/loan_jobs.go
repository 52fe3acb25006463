package jobs

import (
	"context"
	"time"

	"crateledger-backend/internal/logger"
	"crateledger-backend/internal/metrics"
)

// ScanLostLoans counts crates loaned out past the lost threshold, publishes
// the gauge, and mails the admin when any are found.
func (jr *JobRunner) ScanLostLoans() {
	jr.runWithRecovery("ScanLostLoans", func() {
		ctx := context.Background()
		asOf := time.Now()

		count, err := jr.services.Ledger.LostCrateCount(ctx, asOf)
		if err != nil {
			logger.Error("Failed to count lost crates", "error", err)
			return
		}

		metrics.LostCrates.Set(float64(count))
		logger.Info("Scanned for lost crates", "count", count,
			"threshold_hours", jr.config.Loans.LostThresholdHours)

		if count == 0 || jr.config.Email.AdminTo == "" {
			return
		}
		if err := jr.services.Email.SendLostCrateReport(ctx, jr.config.Email.AdminTo, count, asOf); err != nil {
			logger.Error("Failed to send lost crate report", "error", err)
		}
	})
}

// ReconcileCrateStatuses replays every crate's ledger history and repairs any
// cached status that drifted.
func (jr *JobRunner) ReconcileCrateStatuses() {
	jr.runWithRecovery("ReconcileCrateStatuses", func() {
		repaired, err := jr.services.Ledger.ReconcileStatuses(context.Background())
		if err != nil {
			logger.Error("Failed to reconcile crate statuses", "error", err)
			return
		}
		if repaired > 0 {
			logger.Warn("Repaired drifted crate statuses", "count", repaired)
		}
	})
}
