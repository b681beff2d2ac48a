package repository

import (
	"context"
	"time"

	"casebook/internal/model"

	"gorm.io/gorm"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, tx *gorm.DB, c *model.Case) error {
	return pick(r.db, tx).WithContext(ctx).Create(c).Error
}

func (r *CaseRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Case, error) {
	var c model.Case
	if err := pick(r.db, tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, ErrCaseNotFound)
	}
	return &c, nil
}

// ListByClient returns the client's cases, newest first.
func (r *CaseRepository) ListByClient(ctx context.Context, tx *gorm.DB, clientID int64) ([]model.Case, error) {
	var cases []model.Case
	err := pick(r.db, tx).WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("open_date DESC, id DESC").
		Find(&cases).Error
	return cases, err
}

// ListByClientAsc is the report ordering: oldest case first.
func (r *CaseRepository) ListByClientAsc(ctx context.Context, clientID int64) ([]model.Case, error) {
	var cases []model.Case
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id").
		Find(&cases).Error
	return cases, err
}

type recentRow struct {
	ClientID           int64
	BusinessName       string
	CaseID             int64
	DebtorBusinessName string
	DebtorFirst        string
	DebtorLast         string
	OpenDate           time.Time
}

// Recent returns the most recently opened cases across all clients.
func (r *CaseRepository) Recent(ctx context.Context, limit int) ([]model.RecentCase, error) {
	var rows []recentRow
	err := r.db.WithContext(ctx).
		Table("cases AS s").
		Select("c.id AS client_id, c.business_name, s.id AS case_id, s.debtor_business_name, s.debtor_first, s.debtor_last, s.open_date").
		Joins("JOIN clients c ON c.id = s.client_id").
		Order("s.open_date DESC, s.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.RecentCase, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.RecentCase{
			ClientID:     row.ClientID,
			BusinessName: row.BusinessName,
			CaseID:       row.CaseID,
			Debtor:       model.DebtorName(row.DebtorBusinessName, row.DebtorFirst, row.DebtorLast),
			OpenDate:     row.OpenDate,
		})
	}
	return out, nil
}

func (r *CaseRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, s model.StatusSnapshot) error {
	return pick(r.db, tx).WithContext(ctx).
		Model(&model.Case{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           s.Status,
			"substatus":        s.Substatus,
			"next_action_date": s.NextActionDate,
		}).Error
}

func (r *CaseRepository) RenameDebtor(ctx context.Context, tx *gorm.DB, id int64, name string) error {
	result := pick(r.db, tx).WithContext(ctx).
		Model(&model.Case{}).
		Where("id = ?", id).
		Update("debtor_business_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

type searchRow struct {
	ClientID           int64
	ClientName         string
	CaseID             int64
	DebtorBusinessName string
	DebtorFirst        string
	DebtorLast         string
	Postcode           string
	Email              string
	Phone              string
}

const searchTermClause = "(LOWER(c.business_name) LIKE ? ESCAPE '!'" +
	" OR LOWER(s.debtor_business_name) LIKE ? ESCAPE '!'" +
	" OR LOWER(s.debtor_first) LIKE ? ESCAPE '!' OR LOWER(s.debtor_last) LIKE ? ESCAPE '!'" +
	" OR LOWER(s.email) LIKE ? ESCAPE '!' OR LOWER(s.phone) LIKE ? ESCAPE '!'" +
	" OR LOWER(s.postcode) LIKE ? ESCAPE '!')"

// Search returns cases where every term matches at least one of the
// client name, debtor names, email, phone or postcode.
func (r *CaseRepository) Search(ctx context.Context, terms []string, limit int) ([]model.SearchResult, error) {
	query := r.db.WithContext(ctx).
		Table("cases AS s").
		Select("c.id AS client_id, c.business_name AS client_name, s.id AS case_id, " +
			"s.debtor_business_name, s.debtor_first, s.debtor_last, s.postcode, s.email, s.phone").
		Joins("JOIN clients c ON c.id = s.client_id")

	for _, term := range terms {
		like := containsPattern(term)
		query = query.Where(searchTermClause, like, like, like, like, like, like, like)
	}

	var rows []searchRow
	if err := query.Order("c.business_name, s.id").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]model.SearchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.SearchResult{
			ClientID:   row.ClientID,
			ClientName: row.ClientName,
			CaseID:     row.CaseID,
			DebtorName: model.DebtorName(row.DebtorBusinessName, row.DebtorFirst, row.DebtorLast),
			Postcode:   row.Postcode,
			Email:      row.Email,
			Phone:      row.Phone,
		})
	}
	return out, nil
}
