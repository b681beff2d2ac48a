package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"casebook/internal/config"
	"casebook/internal/infrastructure/lock"
	"casebook/internal/model"
	"casebook/internal/repository"
	"casebook/pkg/idgen"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CaseService struct {
	db          *gorm.DB
	locker      lock.Locker
	logger      *zap.Logger
	caseRepo    *repository.CaseRepository
	clientRepo  *repository.ClientRepository
	historyRepo *repository.StatusHistoryRepository
	events      *EventService
}

func NewCaseService(db *gorm.DB, locker lock.Locker, cfg *config.Config, logger *zap.Logger) *CaseService {
	return &CaseService{
		db:          db,
		locker:      locker,
		logger:      logger,
		caseRepo:    repository.NewCaseRepository(db),
		clientRepo:  repository.NewClientRepository(db),
		historyRepo: repository.NewStatusHistoryRepository(db),
		events:      NewEventService(db, cfg.Kafka.Topic.CaseEvents),
	}
}

type AddCaseRequest struct {
	ClientID           int64  `form:"client_id" json:"client_id" binding:"required"`
	DebtorBusinessType string `form:"debtor_business_type" json:"debtor_business_type" binding:"omitempty,businesstype"`
	DebtorBusinessName string `form:"debtor_business_name" json:"debtor_business_name"`
	DebtorFirst        string `form:"debtor_first" json:"debtor_first"`
	DebtorLast         string `form:"debtor_last" json:"debtor_last"`
	Phone              string `form:"phone" json:"phone"`
	Email              string `form:"email" json:"email" binding:"omitempty,email"`
	Postcode           string `form:"postcode" json:"postcode"`
	NextActionDate     string `form:"next_action_date" json:"next_action_date"`
	OpenDate           string `form:"open_date" json:"open_date"`
}

// AddCase opens a case for an existing client. Status starts Open and the
// open date defaults to today.
func (s *CaseService) AddCase(ctx context.Context, req *AddCaseRequest, userID int64) (*model.Case, error) {
	var debtorType model.BusinessType
	if req.DebtorBusinessType != "" {
		t, err := model.ParseBusinessType(req.DebtorBusinessType)
		if err != nil {
			return nil, err
		}
		debtorType = t
	}
	next, err := parseOptionalDate(req.NextActionDate)
	if err != nil {
		return nil, err
	}
	opened, err := dateOrToday(req.OpenDate)
	if err != nil {
		return nil, err
	}
	if model.DebtorName(req.DebtorBusinessName, req.DebtorFirst, req.DebtorLast) == "" {
		return nil, fmt.Errorf("debtor %w", ErrEmptyName)
	}

	c := &model.Case{
		ClientID:           req.ClientID,
		DebtorBusinessType: debtorType,
		DebtorBusinessName: strings.TrimSpace(req.DebtorBusinessName),
		DebtorFirst:        strings.TrimSpace(req.DebtorFirst),
		DebtorLast:         strings.TrimSpace(req.DebtorLast),
		Phone:              strings.TrimSpace(req.Phone),
		Email:              strings.TrimSpace(req.Email),
		Postcode:           strings.TrimSpace(req.Postcode),
		Status:             model.CaseStatusOpen,
		NextActionDate:     next,
		OpenDate:           opened,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.clientRepo.GetByID(ctx, tx, req.ClientID); err != nil {
			return err
		}
		if err := s.caseRepo.Create(ctx, tx, c); err != nil {
			return fmt.Errorf("create case: %w", err)
		}
		return s.events.Record(ctx, tx, model.EventCaseOpened, c, 0, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("case opened", zap.Int64("case_id", c.ID), zap.Int64("client_id", c.ClientID))
	return c, nil
}

func (s *CaseService) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	return s.caseRepo.GetByID(ctx, nil, id)
}

func (s *CaseService) RenameDebtor(ctx context.Context, caseID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.caseRepo.RenameDebtor(ctx, tx, caseID, name)
	})
}

type ChangeStatusRequest struct {
	CaseID         int64  `form:"case_id" json:"case_id" binding:"required"`
	Status         string `form:"status" json:"status" binding:"required,casestatus"`
	Substatus      string `form:"substatus" json:"substatus"`
	NextActionDate string `form:"next_action_date" json:"next_action_date"`
}

// ChangeStatus applies a new status, substatus and next action date. A
// history row is appended only when one of the three actually changes.
// It reports whether anything changed.
func (s *CaseService) ChangeStatus(ctx context.Context, req *ChangeStatusRequest, userID int64) (*model.Case, bool, error) {
	status, err := model.ParseCaseStatus(req.Status)
	if err != nil {
		return nil, false, err
	}
	next, err := parseOptionalDate(req.NextActionDate)
	if err != nil {
		return nil, false, err
	}
	target := model.StatusSnapshot{
		Status:         status,
		Substatus:      optionalString(req.Substatus),
		NextActionDate: next,
	}

	release, err := s.locker.Acquire(ctx, lock.CaseStatusKey(req.CaseID), idgen.GenerateRequestID())
	if err != nil {
		return nil, false, err
	}
	defer release()

	var (
		c       *model.Case
		changed bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		c, err = s.caseRepo.GetByID(ctx, tx, req.CaseID)
		if err != nil {
			return err
		}
		current := c.Snapshot()
		if current.Equal(target) {
			return nil
		}
		changed = true

		if err := s.caseRepo.UpdateStatus(ctx, tx, c.ID, target); err != nil {
			return fmt.Errorf("update case status: %w", err)
		}
		h := &model.CaseStatusHistory{
			CaseID:            c.ID,
			OldStatus:         current.Status,
			OldSubstatus:      current.Substatus,
			NewStatus:         target.Status,
			NewSubstatus:      target.Substatus,
			OldNextActionDate: current.NextActionDate,
			ChangedBy:         userID,
		}
		if err := s.historyRepo.Create(ctx, tx, h); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}

		c.Status, c.Substatus, c.NextActionDate = target.Status, target.Substatus, target.NextActionDate
		return s.events.Record(ctx, tx, model.EventCaseStatusChanged, c, 0, userID)
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.logger.Info("case status changed",
			zap.Int64("case_id", c.ID),
			zap.String("status", string(c.Status)),
			zap.Int64("user_id", userID))
	}
	return c, changed, nil
}

// UndoStatus pops the most recent history row and restores the values it
// recorded. Only one level is undone per call.
func (s *CaseService) UndoStatus(ctx context.Context, caseID, userID int64) (*model.Case, error) {
	release, err := s.locker.Acquire(ctx, lock.CaseStatusKey(caseID), idgen.GenerateRequestID())
	if err != nil {
		return nil, err
	}
	defer release()

	var c *model.Case
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		c, err = s.caseRepo.GetByID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		h, err := s.historyRepo.Latest(ctx, tx, caseID)
		if errors.Is(err, repository.ErrHistoryNotFound) {
			return ErrNothingToUndo
		}
		if err != nil {
			return err
		}

		restored := model.StatusSnapshot{
			Status:         h.OldStatus,
			Substatus:      h.OldSubstatus,
			NextActionDate: h.OldNextActionDate,
		}
		if err := s.caseRepo.UpdateStatus(ctx, tx, caseID, restored); err != nil {
			return fmt.Errorf("restore case status: %w", err)
		}
		if err := s.historyRepo.Delete(ctx, tx, h.ID); err != nil {
			return fmt.Errorf("delete status history: %w", err)
		}

		c.Status, c.Substatus, c.NextActionDate = restored.Status, restored.Substatus, restored.NextActionDate
		return s.events.Record(ctx, tx, model.EventCaseStatusUndone, c, 0, userID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("case status undone", zap.Int64("case_id", caseID), zap.String("status", string(c.Status)))
	return c, nil
}
