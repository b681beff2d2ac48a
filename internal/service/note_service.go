package service

import (
	"context"
	"fmt"
	"strings"

	"casebook/internal/model"
	"casebook/internal/repository"

	"gorm.io/gorm"
)

type NoteService struct {
	db       *gorm.DB
	noteRepo *repository.NoteRepository
	caseRepo *repository.CaseRepository
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{
		db:       db,
		noteRepo: repository.NewNoteRepository(db),
		caseRepo: repository.NewCaseRepository(db),
	}
}

type AddNoteRequest struct {
	CaseID int64  `form:"case_id" json:"case_id" binding:"required"`
	Type   string `form:"type" json:"type" binding:"required,notetype"`
	Note   string `form:"note" json:"note" binding:"required"`
}

func (s *NoteService) AddNote(ctx context.Context, req *AddNoteRequest, userID int64) (*model.Note, error) {
	typ, err := model.ParseNoteType(req.Type)
	if err != nil {
		return nil, err
	}
	body := strings.TrimSpace(req.Note)
	if body == "" {
		return nil, ErrEmptyNote
	}

	note := &model.Note{CaseID: req.CaseID, Type: typ, Note: body, CreatedBy: userID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.caseRepo.GetByID(ctx, tx, req.CaseID); err != nil {
			return err
		}
		if err := s.noteRepo.Create(ctx, tx, note); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

type EditNoteRequest struct {
	ID   int64  `form:"id" json:"id" binding:"required"`
	Type string `form:"type" json:"type" binding:"required,notetype"`
	Note string `form:"note" json:"note" binding:"required"`
}

// EditNote overwrites the note in place and returns its case id.
func (s *NoteService) EditNote(ctx context.Context, req *EditNoteRequest) (int64, error) {
	typ, err := model.ParseNoteType(req.Type)
	if err != nil {
		return 0, err
	}
	body := strings.TrimSpace(req.Note)
	if body == "" {
		return 0, ErrEmptyNote
	}

	var caseID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.noteRepo.GetByID(ctx, tx, req.ID)
		if err != nil {
			return err
		}
		caseID = n.CaseID
		return s.noteRepo.Update(ctx, tx, req.ID, typ, body)
	})
	return caseID, err
}

func (s *NoteService) DeleteNote(ctx context.Context, id int64) (int64, error) {
	var caseID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.noteRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		caseID = n.CaseID
		return s.noteRepo.Delete(ctx, tx, id)
	})
	return caseID, err
}
