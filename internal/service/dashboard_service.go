package service

import (
	"context"
	"fmt"

	"casebook/internal/config"
	"casebook/internal/ledger"
	"casebook/internal/model"
	"casebook/internal/repository"

	"gorm.io/gorm"
)

type DashboardService struct {
	pageSize    int
	recentCases int
	clientRepo  *repository.ClientRepository
	caseRepo    *repository.CaseRepository
	ledgerRepo  *repository.LedgerRepository
	noteRepo    *repository.NoteRepository
	historyRepo *repository.StatusHistoryRepository
	fieldRepo   *repository.CustomFieldRepository
}

func NewDashboardService(db *gorm.DB, cfg *config.Config) *DashboardService {
	return &DashboardService{
		pageSize:    cfg.Business.PageSize,
		recentCases: cfg.Business.RecentCases,
		clientRepo:  repository.NewClientRepository(db),
		caseRepo:    repository.NewCaseRepository(db),
		ledgerRepo:  repository.NewLedgerRepository(db),
		noteRepo:    repository.NewNoteRepository(db),
		historyRepo: repository.NewStatusHistoryRepository(db),
		fieldRepo:   repository.NewCustomFieldRepository(db),
	}
}

type Dashboard struct {
	Clients     []model.ClientRef  `json:"clients"`
	RecentCases []model.RecentCase `json:"recent_cases"`
	Case        *CaseDetail        `json:"case,omitempty"`
}

type CaseDetail struct {
	Case             *model.Case               `json:"case"`
	DebtorName       string                    `json:"debtor_name"`
	Client           *model.Client             `json:"client"`
	ClientCases      []model.CaseSummary       `json:"client_cases"`
	Notes            []model.NoteView          `json:"notes"`
	NotesPage        Pagination                `json:"notes_page"`
	Transactions     []model.LedgerEntryView   `json:"transactions"`
	TransactionsPage Pagination                `json:"transactions_page"`
	StatusHistory    []model.StatusHistoryView `json:"status_history"`
	CustomValues     []model.CustomValueView   `json:"custom_values"`
	Balance          BalanceView               `json:"balance"`
}

// Dashboard returns the sidebar data and, when caseID is non-zero, the
// selected case. The case balance always covers every entry, whatever
// page of transactions is shown.
func (s *DashboardService) Dashboard(ctx context.Context, caseID int64, page int) (*Dashboard, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	recent, err := s.caseRepo.Recent(ctx, s.recentCases)
	if err != nil {
		return nil, fmt.Errorf("list recent cases: %w", err)
	}

	d := &Dashboard{Clients: clients, RecentCases: recent}
	if caseID == 0 {
		return d, nil
	}
	if d.Case, err = s.caseDetail(ctx, caseID, page); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DashboardService) caseDetail(ctx context.Context, caseID int64, page int) (*CaseDetail, error) {
	c, err := s.caseRepo.GetByID(ctx, nil, caseID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.GetByID(ctx, nil, c.ClientID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.caseRepo.ListByClient(ctx, nil, c.ClientID)
	if err != nil {
		return nil, err
	}
	clientEntries, err := s.ledgerRepo.ListByClient(ctx, c.ClientID)
	if err != nil {
		return nil, err
	}
	byCase := ledger.AggregateByCase(clientEntries)

	offset, limit := repository.Page(page, s.pageSize)

	notes, err := s.noteRepo.PageByCase(ctx, caseID, offset, limit)
	if err != nil {
		return nil, err
	}
	noteCount, err := s.noteRepo.CountByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.ledgerRepo.PageByCase(ctx, caseID, offset, limit)
	if err != nil {
		return nil, err
	}
	transactionCount, err := s.ledgerRepo.CountByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	history, err := s.historyRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	values, err := s.fieldRepo.ListCaseValues(ctx, caseID)
	if err != nil {
		return nil, err
	}

	return &CaseDetail{
		Case:             c,
		DebtorName:       c.DebtorName(),
		Client:           client,
		ClientCases:      caseSummaries(siblings, byCase),
		Notes:            notes,
		NotesPage:        newPagination(page, s.pageSize, noteCount),
		Transactions:     transactions,
		TransactionsPage: newPagination(page, s.pageSize, transactionCount),
		StatusHistory:    history,
		CustomValues:     values,
		Balance:          NewBalanceView(byCase[caseID]),
	}, nil
}
