// Package report builds per-client balance reports and renders them as an
// HTML table, an XLSX workbook or a PDF.
package report

import (
	"fmt"

	"casebook/internal/ledger"
	"casebook/internal/model"
)

// Columns is the header row shared by every rendition.
var Columns = []string{"Case ID", "Debtor", "Invoice", "Payment", "Charge", "Interest", "Balance"}

type Row struct {
	CaseID  int64
	Debtor  string
	Summary ledger.Summary
}

// Report holds rounded per-case rows and the grand totals.
type Report struct {
	ClientID   int64
	ClientName string
	Rows       []Row
	Totals     ledger.Summary
}

// Build folds each case on its own and sums the case summaries into the
// totals row. Cases appear in the order given; cases with no entries get
// a zero row.
func Build(client *model.Client, cases []model.Case, entries []model.LedgerEntry) *Report {
	byCase := ledger.AggregateByCase(entries)

	r := &Report{ClientID: client.ID, ClientName: client.BusinessName}
	var grand ledger.Summary
	for i := range cases {
		s := byCase[cases[i].ID]
		grand.Merge(s)
		r.Rows = append(r.Rows, Row{
			CaseID:  cases[i].ID,
			Debtor:  cases[i].DebtorName(),
			Summary: s.Rounded(),
		})
	}
	r.Totals = grand.Rounded()
	return r
}

func (r *Report) Title() string {
	return fmt.Sprintf("Client Report: %s (ID: %d)", r.ClientName, r.ClientID)
}

// FileName returns report_client_<id>.<ext>.
func (r *Report) FileName(ext string) string {
	return fmt.Sprintf("report_client_%d.%s", r.ClientID, ext)
}
