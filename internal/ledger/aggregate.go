// Package ledger computes case balances from money-ledger entries.
//
// Payments reduce the balance, invoices and interest increase it, and
// charges increase it only when flagged recoverable. Per-type totals are
// unconditional and exist for the breakdown display. Accumulation is exact;
// rounding to pence happens only in Rounded.
package ledger

import (
	"casebook/internal/model"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places shown for money.
const DisplayPlaces = 2

// Totals is the unconditional per-type sum of entry amounts.
type Totals struct {
	Invoice  decimal.Decimal `json:"Invoice"`
	Payment  decimal.Decimal `json:"Payment"`
	Charge   decimal.Decimal `json:"Charge"`
	Interest decimal.Decimal `json:"Interest"`
}

// Of returns the total for one ledger type.
func (t Totals) Of(typ model.LedgerType) decimal.Decimal {
	switch typ {
	case model.LedgerTypeInvoice:
		return t.Invoice
	case model.LedgerTypePayment:
		return t.Payment
	case model.LedgerTypeCharge:
		return t.Charge
	case model.LedgerTypeInterest:
		return t.Interest
	}
	return decimal.Zero
}

func (t *Totals) add(typ model.LedgerType, amount decimal.Decimal) {
	switch typ {
	case model.LedgerTypeInvoice:
		t.Invoice = t.Invoice.Add(amount)
	case model.LedgerTypePayment:
		t.Payment = t.Payment.Add(amount)
	case model.LedgerTypeCharge:
		t.Charge = t.Charge.Add(amount)
	case model.LedgerTypeInterest:
		t.Interest = t.Interest.Add(amount)
	}
}

// Summary is the result of folding a case's entries.
type Summary struct {
	Balance decimal.Decimal `json:"balance"`
	Totals  Totals          `json:"totals"`
}

// Add folds one entry into the summary.
func (s *Summary) Add(e model.LedgerEntry) {
	s.Totals.add(e.Type, e.Amount)

	switch {
	case e.Type == model.LedgerTypePayment:
		s.Balance = s.Balance.Sub(e.Amount)
	case e.Type == model.LedgerTypeInvoice, e.Type == model.LedgerTypeInterest:
		s.Balance = s.Balance.Add(e.Amount)
	case e.Type == model.LedgerTypeCharge && e.Recoverable:
		s.Balance = s.Balance.Add(e.Amount)
	}
}

// Merge adds another summary into s. Used for grand totals across cases;
// each case is folded on its own first, there is no cross-case netting.
func (s *Summary) Merge(o Summary) {
	s.Balance = s.Balance.Add(o.Balance)
	s.Totals.Invoice = s.Totals.Invoice.Add(o.Totals.Invoice)
	s.Totals.Payment = s.Totals.Payment.Add(o.Totals.Payment)
	s.Totals.Charge = s.Totals.Charge.Add(o.Totals.Charge)
	s.Totals.Interest = s.Totals.Interest.Add(o.Totals.Interest)
}

// Rounded returns a copy rounded to DisplayPlaces.
func (s Summary) Rounded() Summary {
	return Summary{
		Balance: s.Balance.Round(DisplayPlaces),
		Totals: Totals{
			Invoice:  s.Totals.Invoice.Round(DisplayPlaces),
			Payment:  s.Totals.Payment.Round(DisplayPlaces),
			Charge:   s.Totals.Charge.Round(DisplayPlaces),
			Interest: s.Totals.Interest.Round(DisplayPlaces),
		},
	}
}

// Aggregate folds entries into a summary. The result does not depend on order.
func Aggregate(entries []model.LedgerEntry) Summary {
	var s Summary
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// AggregateByCase folds entries independently per case id.
func AggregateByCase(entries []model.LedgerEntry) map[int64]Summary {
	out := make(map[int64]Summary)
	for _, e := range entries {
		s := out[e.CaseID]
		s.Add(e)
		out[e.CaseID] = s
	}
	return out
}
