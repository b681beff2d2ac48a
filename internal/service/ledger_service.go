package service

import (
	"context"
	"fmt"
	"strings"

	"casebook/internal/config"
	"casebook/internal/ledger"
	"casebook/internal/model"
	"casebook/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LedgerService manages money entries on cases.
type LedgerService struct {
	db         *gorm.DB
	logger     *zap.Logger
	ledgerRepo *repository.LedgerRepository
	caseRepo   *repository.CaseRepository
	clientRepo *repository.ClientRepository
	chargeRepo *repository.ChargeRepository
	events     *EventService
}

func NewLedgerService(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		db:         db,
		logger:     logger,
		ledgerRepo: repository.NewLedgerRepository(db),
		caseRepo:   repository.NewCaseRepository(db),
		clientRepo: repository.NewClientRepository(db),
		chargeRepo: repository.NewChargeRepository(db),
		events:     NewEventService(db, cfg.Kafka.Topic.CaseEvents),
	}
}

type AddEntryRequest struct {
	CaseID          int64  `form:"case_id" json:"case_id" binding:"required"`
	Type            string `form:"type" json:"type" binding:"required,ledgertype"`
	Amount          string `form:"amount" json:"amount" binding:"required"`
	TransactionDate string `form:"transaction_date" json:"transaction_date"`
	Description     string `form:"description" json:"description"`
	Recoverable     bool   `form:"recoverable" json:"recoverable"`
	Billable        bool   `form:"billable" json:"billable"`
	VATAmount       string `form:"vat_amount" json:"vat_amount"`
	ChargeID        *int64 `form:"charge_id" json:"charge_id"`
}

// AddEntry records a money movement. The recoverable flag only has meaning
// for charges and is dropped for other types.
func (s *LedgerService) AddEntry(ctx context.Context, req *AddEntryRequest, userID int64) (*model.LedgerEntry, error) {
	typ, err := model.ParseLedgerType(req.Type)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	vat, err := parseOptionalAmount(req.VATAmount)
	if err != nil {
		return nil, err
	}
	date, err := dateOrToday(req.TransactionDate)
	if err != nil {
		return nil, err
	}
	if req.ChargeID != nil && typ != model.LedgerTypeCharge {
		return nil, ErrChargeTypeMismatch
	}

	entry := &model.LedgerEntry{
		CaseID:          req.CaseID,
		Type:            typ,
		Amount:          amount,
		TransactionDate: date,
		CreatedBy:       userID,
		Description:     strings.TrimSpace(req.Description),
		Recoverable:     req.Recoverable && typ == model.LedgerTypeCharge,
		Billable:        req.Billable,
		VATAmount:       vat,
		ChargeID:        req.ChargeID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.caseRepo.GetByID(ctx, tx, req.CaseID)
		if err != nil {
			return err
		}
		if req.ChargeID != nil {
			if _, err := s.chargeRepo.GetByID(ctx, tx, *req.ChargeID); err != nil {
				return err
			}
		}
		if err := s.ledgerRepo.Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return s.events.Record(ctx, tx, model.EventLedgerEntryAdded, c, entry.ID, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction added",
		zap.Int64("case_id", entry.CaseID),
		zap.Int64("entry_id", entry.ID),
		zap.String("type", string(entry.Type)),
		zap.String("amount", entry.Amount.String()))
	return entry, nil
}

func (s *LedgerService) GetEntry(ctx context.Context, id int64) (*model.LedgerEntry, error) {
	return s.ledgerRepo.GetByID(ctx, nil, id)
}

type EditEntryRequest struct {
	ID          int64  `form:"id" json:"id" binding:"required"`
	Amount      string `form:"amount" json:"amount" binding:"required"`
	Description string `form:"description" json:"description"`
	Recoverable bool   `form:"recoverable" json:"recoverable"`
	Billable    bool   `form:"billable" json:"billable"`
}

// EditEntry overwrites amount, description and flags. No edit history is kept.
func (s *LedgerService) EditEntry(ctx context.Context, req *EditEntryRequest, userID int64) (*model.LedgerEntry, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	var entry *model.LedgerEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.ledgerRepo.GetByID(ctx, tx, req.ID)
		if err != nil {
			return err
		}
		entry.Amount = amount
		entry.Description = strings.TrimSpace(req.Description)
		entry.Recoverable = req.Recoverable && entry.Type == model.LedgerTypeCharge
		entry.Billable = req.Billable
		if err := s.ledgerRepo.Update(ctx, tx, entry); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}

		c, err := s.caseRepo.GetByID(ctx, tx, entry.CaseID)
		if err != nil {
			return err
		}
		return s.events.Record(ctx, tx, model.EventLedgerEntryEdited, c, entry.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry hard-deletes an entry and returns the case it belonged to.
func (s *LedgerService) DeleteEntry(ctx context.Context, id, userID int64) (int64, error) {
	var caseID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := s.ledgerRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		caseID = entry.CaseID
		if err := s.ledgerRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		c, err := s.caseRepo.GetByID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		return s.events.Record(ctx, tx, model.EventLedgerEntryDeleted, c, id, userID)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("transaction deleted", zap.Int64("case_id", caseID), zap.Int64("entry_id", id))
	return caseID, nil
}

type MarkBilledRequest struct {
	BilledDate string `form:"billed_date" json:"billed_date"`
}

type BilledResult struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

// MarkBilled flags every billable, unbilled entry of the client's cases as
// billed on the given date (today when empty).
func (s *LedgerService) MarkBilled(ctx context.Context, clientID int64, req *MarkBilledRequest, userID int64) (*BilledResult, error) {
	date, err := dateOrToday(req.BilledDate)
	if err != nil {
		return nil, err
	}

	result := &BilledResult{Total: decimal.Zero.StringFixed(ledger.DisplayPlaces)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.clientRepo.GetByID(ctx, tx, clientID); err != nil {
			return err
		}
		entries, err := s.ledgerRepo.ListUnbilled(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(entries))
		caseIDs := make(map[int64]struct{})
		total := decimal.Zero
		for _, e := range entries {
			ids = append(ids, e.ID)
			caseIDs[e.CaseID] = struct{}{}
			total = total.Add(e.Amount)
		}
		if err := s.ledgerRepo.MarkBilled(ctx, tx, ids, date); err != nil {
			return fmt.Errorf("mark billed: %w", err)
		}

		for caseID := range caseIDs {
			c, err := s.caseRepo.GetByID(ctx, tx, caseID)
			if err != nil {
				return err
			}
			if err := s.events.Record(ctx, tx, model.EventLedgerEntriesBilled, c, 0, userID); err != nil {
				return err
			}
		}
		result.Count = len(ids)
		result.Total = total.Round(ledger.DisplayPlaces).StringFixed(ledger.DisplayPlaces)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
