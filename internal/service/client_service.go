package service

import (
	"context"
	"fmt"
	"strings"

	"casebook/internal/ledger"
	"casebook/internal/model"
	"casebook/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	db         *gorm.DB
	logger     *zap.Logger
	clientRepo *repository.ClientRepository
	caseRepo   *repository.CaseRepository
	ledgerRepo *repository.LedgerRepository
	fieldRepo  *repository.CustomFieldRepository
}

func NewClientService(db *gorm.DB, logger *zap.Logger) *ClientService {
	return &ClientService{
		db:         db,
		logger:     logger,
		clientRepo: repository.NewClientRepository(db),
		caseRepo:   repository.NewCaseRepository(db),
		ledgerRepo: repository.NewLedgerRepository(db),
		fieldRepo:  repository.NewCustomFieldRepository(db),
	}
}

type AddClientRequest struct {
	BusinessType        string `form:"business_type" json:"business_type" binding:"required,businesstype"`
	BusinessName        string `form:"business_name" json:"business_name" binding:"required"`
	ContactFirst        string `form:"contact_first" json:"contact_first"`
	ContactLast         string `form:"contact_last" json:"contact_last"`
	Phone               string `form:"phone" json:"phone"`
	Email               string `form:"email" json:"email" binding:"omitempty,email"`
	BacsDetails         string `form:"bacs_details" json:"bacs_details"`
	DefaultInterestRate string `form:"default_interest_rate" json:"default_interest_rate"`
}

func (s *ClientService) AddClient(ctx context.Context, req *AddClientRequest) (*model.Client, error) {
	typ, err := model.ParseBusinessType(req.BusinessType)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, ErrEmptyName
	}
	rate, err := parseOptionalAmount(req.DefaultInterestRate)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		BusinessType:        typ,
		BusinessName:        name,
		ContactFirst:        strings.TrimSpace(req.ContactFirst),
		ContactLast:         strings.TrimSpace(req.ContactLast),
		Phone:               strings.TrimSpace(req.Phone),
		Email:               strings.TrimSpace(req.Email),
		BacsDetails:         strings.TrimSpace(req.BacsDetails),
		DefaultInterestRate: rate,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clientRepo.Create(ctx, tx, client)
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info("client added", zap.Int64("client_id", client.ID))
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	return s.clientRepo.GetByID(ctx, nil, id)
}

func (s *ClientService) ListClients(ctx context.Context) ([]model.ClientRef, error) {
	return s.clientRepo.List(ctx)
}

type ClientDashboard struct {
	Client       *model.Client                 `json:"client"`
	Cases        []model.CaseSummary           `json:"cases"`
	Totals       BalanceView                   `json:"totals"`
	CustomFields []model.CustomFieldDefinition `json:"custom_fields"`
}

// ClientDashboard returns the client with its cases newest first, each
// with its own balance, and the sum of those balances.
func (s *ClientService) ClientDashboard(ctx context.Context, id int64) (*ClientDashboard, error) {
	client, err := s.clientRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	cases, byCase, err := s.casesWithBalances(ctx, id)
	if err != nil {
		return nil, err
	}
	fields, err := s.fieldRepo.ListClientFields(ctx, id)
	if err != nil {
		return nil, err
	}

	var grand ledger.Summary
	for _, summary := range byCase {
		grand.Merge(summary)
	}
	return &ClientDashboard{
		Client:       client,
		Cases:        caseSummaries(cases, byCase),
		Totals:       NewBalanceView(grand),
		CustomFields: fields,
	}, nil
}

// ClientCases is the case switcher list for one client.
func (s *ClientService) ClientCases(ctx context.Context, id int64) ([]model.CaseSummary, error) {
	if _, err := s.clientRepo.GetByID(ctx, nil, id); err != nil {
		return nil, err
	}
	cases, byCase, err := s.casesWithBalances(ctx, id)
	if err != nil {
		return nil, err
	}
	return caseSummaries(cases, byCase), nil
}

func (s *ClientService) casesWithBalances(ctx context.Context, clientID int64) ([]model.Case, map[int64]ledger.Summary, error) {
	cases, err := s.caseRepo.ListByClient(ctx, nil, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("list cases: %w", err)
	}
	entries, err := s.ledgerRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("list transactions: %w", err)
	}
	return cases, ledger.AggregateByCase(entries), nil
}

type RenameClientRequest struct {
	ClientID int64  `form:"client_id" json:"client_id" binding:"required"`
	Name     string `form:"name" json:"name" binding:"required"`
}

func (s *ClientService) RenameClient(ctx context.Context, req *RenameClientRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ErrEmptyName
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clientRepo.Rename(ctx, tx, req.ClientID, name)
	})
}

// DeleteClient removes the client and, by cascade, all of its cases.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.clientRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Warn("client deleted", zap.Int64("client_id", id))
	return nil
}
