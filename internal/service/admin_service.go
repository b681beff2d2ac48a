package service

import (
	"context"

	"casebook/internal/repository"

	"gorm.io/gorm"
)

type AdminService struct {
	schemaRepo *repository.SchemaRepository
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{schemaRepo: repository.NewSchemaRepository(db)}
}

// DBStructure lists every table and its columns.
func (s *AdminService) DBStructure(ctx context.Context) ([]repository.Table, error) {
	return s.schemaRepo.Describe(ctx)
}
