package service

import (
	"bytes"
	"context"
	"fmt"

	"casebook/internal/report"
	"casebook/internal/repository"

	"gorm.io/gorm"
)

type ReportService struct {
	clientRepo *repository.ClientRepository
	caseRepo   *repository.CaseRepository
	ledgerRepo *repository.LedgerRepository
	pdf        report.PDFRenderer
}

func NewReportService(db *gorm.DB, pdf report.PDFRenderer) *ReportService {
	return &ReportService{
		clientRepo: repository.NewClientRepository(db),
		caseRepo:   repository.NewCaseRepository(db),
		ledgerRepo: repository.NewLedgerRepository(db),
		pdf:        pdf,
	}
}

// ClientReport folds every case of the client into one report row.
func (s *ReportService) ClientReport(ctx context.Context, clientID int64) (*report.Report, error) {
	client, err := s.clientRepo.GetByID(ctx, nil, clientID)
	if err != nil {
		return nil, err
	}
	cases, err := s.caseRepo.ListByClientAsc(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	entries, err := s.ledgerRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return report.Build(client, cases, entries), nil
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (s *ReportService) ExportXLSX(ctx context.Context, clientID int64) (*File, error) {
	r, err := s.ClientReport(ctx, clientID)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.WriteXLSX(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return &File{Name: r.FileName("xlsx"), ContentType: report.XLSXMimeType, Data: buf.Bytes()}, nil
}

func (s *ReportService) ExportPDF(ctx context.Context, clientID int64) (*File, error) {
	r, err := s.ClientReport(ctx, clientID)
	if err != nil {
		return nil, err
	}
	html, err := r.HTML()
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	data, err := s.pdf.RenderPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	return &File{Name: r.FileName("pdf"), ContentType: report.PDFMimeType, Data: data}, nil
}
