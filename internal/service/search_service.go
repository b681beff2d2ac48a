package service

import (
	"context"
	"strings"

	"casebook/internal/config"
	"casebook/internal/model"
	"casebook/internal/repository"

	"gorm.io/gorm"
)

type SearchService struct {
	caseRepo          *repository.CaseRepository
	clientRepo        *repository.ClientRepository
	searchLimit       int
	clientSearchLimit int
}

func NewSearchService(db *gorm.DB, cfg *config.Config) *SearchService {
	return &SearchService{
		caseRepo:          repository.NewCaseRepository(db),
		clientRepo:        repository.NewClientRepository(db),
		searchLimit:       cfg.Business.SearchLimit,
		clientSearchLimit: cfg.Business.ClientSearchLimit,
	}
}

// Search splits q on whitespace; every term must match. An empty query
// returns an empty list.
func (s *SearchService) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	terms := strings.Fields(q)
	if len(terms) == 0 {
		return []model.SearchResult{}, nil
	}
	return s.caseRepo.Search(ctx, terms, s.searchLimit)
}

func (s *SearchService) ClientSearch(ctx context.Context, q string) ([]model.ClientRef, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []model.ClientRef{}, nil
	}
	return s.clientRepo.Search(ctx, q, s.clientSearchLimit)
}
