package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
)

// Column describes one database column for the admin schema view.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

type SchemaRepository struct {
	db *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Describe lists every table with its columns, tables sorted by name.
func (r *SchemaRepository) Describe(ctx context.Context) ([]Table, error) {
	migrator := r.db.WithContext(ctx).Migrator()
	names, err := migrator.GetTables()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		types, err := migrator.ColumnTypes(name)
		if err != nil {
			return nil, err
		}
		t := Table{Name: name}
		for _, ct := range types {
			nullable, _ := ct.Nullable()
			t.Columns = append(t.Columns, Column{
				Name:     ct.Name(),
				Type:     ct.DatabaseTypeName(),
				Nullable: nullable,
			})
		}
		tables = append(tables, t)
	}
	return tables, nil
}
