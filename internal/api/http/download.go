package http

import (
	"fmt"
	"net/http"
	"time"

	"crateledger-backend/internal/domain"
	"crateledger-backend/internal/export"
	"crateledger-backend/internal/logger"
)

const exportTimeFormat = "2006-01-02 15:04:05"

func serveCSV(w http.ResponseWriter, filename string, t export.Table) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
	if err := export.WriteCSV(w, t); err != nil {
		logger.Error("csv export failed", "file", filename, "error", err)
	}
}

func serveXLSX(w http.ResponseWriter, filename, sheet string, t export.Table) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	if err := export.WriteXLSX(w, sheet, t); err != nil {
		logger.Error("xlsx export failed", "file", filename, "error", err)
	}
}

func sellersTable(sellers []domain.Seller) export.Table {
	t := export.Table{Header: []string{"Code", "Name"}}
	for _, s := range sellers {
		t.Rows = append(t.Rows, []string{s.Code, s.Name})
	}
	return t
}

func cratesTable(crates []domain.Crate) export.Table {
	t := export.Table{Header: []string{"Barcode", "Size", "Color", "Condition", "Registered On", "Status"}}
	for _, c := range crates {
		t.Rows = append(t.Rows, []string{
			c.Barcode, c.Size, c.Color, string(c.Condition),
			c.RegisteredOn.Format(exportTimeFormat), string(c.Status),
		})
	}
	return t
}

func availabilityTable(rows []domain.AvailabilityRow) export.Table {
	t := export.Table{Header: []string{"Size", "Color", "Available", "Loaned", "Total"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.Size, r.Color,
			fmt.Sprintf("%d", r.Available), fmt.Sprintf("%d", r.Loaned), fmt.Sprintf("%d", r.Total),
		})
	}
	return t
}

func movementsTable(records []domain.MovementRecord) export.Table {
	t := export.Table{Header: []string{"Date", "Seller", "Kind", "Barcode"}}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.OccurredOn.Format(exportTimeFormat), r.SellerName, string(r.Kind), r.Barcode,
		})
	}
	return t
}

func activityTable(activity []domain.SellerActivity) export.Table {
	t := export.Table{Header: []string{"Seller", "Checkouts", "Returns"}}
	for _, a := range activity {
		t.Rows = append(t.Rows, []string{
			a.SellerName, fmt.Sprintf("%d", a.Checkouts), fmt.Sprintf("%d", a.Returns),
		})
	}
	return t
}

func historyTable(entries []domain.CrateHistoryEntry) export.Table {
	t := export.Table{Header: []string{"Date", "Seller", "Kind"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.OccurredOn.Format(exportTimeFormat), e.SellerName, string(e.Kind),
		})
	}
	return t
}

func openLoansTable(details []domain.OpenLoanDetail) export.Table {
	t := export.Table{Header: []string{"Barcode", "Size", "Color", "Checked Out On"}}
	for _, d := range details {
		t.Rows = append(t.Rows, []string{
			d.Barcode, d.Size, d.Color, d.CheckedOutOn.Format(exportTimeFormat),
		})
	}
	return t
}

func exposureTable(exposures []domain.SellerExposure) export.Table {
	t := export.Table{Header: []string{"Seller", "Active Loans"}}
	for _, e := range exposures {
		t.Rows = append(t.Rows, []string{e.SellerName, fmt.Sprintf("%d", e.ActiveLoans)})
	}
	return t
}

// parseDay interprets a YYYY-MM-DD query parameter as the local-day window
// [00:00:00, 23:59:59], matching how the reports have always been filtered.
func parseDay(value string) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := day
	to := day.Add(24*time.Hour - time.Second)
	return from, to, nil
}
