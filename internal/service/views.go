package service

import (
	"math"

	"casebook/internal/ledger"
	"casebook/internal/model"
	"casebook/internal/report"
)

// BalanceView is a rounded summary ready for display.
type BalanceView struct {
	Balance   string                      `json:"balance"`
	Formatted string                      `json:"formatted"`
	Totals    map[model.LedgerType]string `json:"totals"`
}

func NewBalanceView(s ledger.Summary) BalanceView {
	r := s.Rounded()
	totals := make(map[model.LedgerType]string, len(model.LedgerTypes))
	for _, typ := range model.LedgerTypes {
		totals[typ] = r.Totals.Of(typ).StringFixed(ledger.DisplayPlaces)
	}
	return BalanceView{
		Balance:   r.Balance.StringFixed(ledger.DisplayPlaces),
		Formatted: report.FormatGBP(r.Balance),
		Totals:    totals,
	}
}

type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
}

func newPagination(page, size int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{
		Page:     page,
		PageSize: size,
		Total:    total,
		Pages:    int(math.Ceil(float64(total) / float64(size))),
	}
}

// caseSummaries decorates cases with their balances.
func caseSummaries(cases []model.Case, byCase map[int64]ledger.Summary) []model.CaseSummary {
	out := make([]model.CaseSummary, 0, len(cases))
	for i := range cases {
		c := &cases[i]
		out = append(out, model.CaseSummary{
			ID:         c.ID,
			ClientID:   c.ClientID,
			DebtorName: c.DebtorName(),
			Status:     c.Status,
			Substatus:  c.Substatus,
			OpenDate:   c.OpenDate,
			Balance:    byCase[c.ID].Rounded().Balance.StringFixed(ledger.DisplayPlaces),
		})
	}
	return out
}
