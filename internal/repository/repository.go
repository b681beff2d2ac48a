package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrCaseNotFound    = errors.New("case not found")
	ErrEntryNotFound   = errors.New("transaction not found")
	ErrNoteNotFound    = errors.New("note not found")
	ErrHistoryNotFound = errors.New("no status history")
	ErrUserNotFound    = errors.New("user not found")
	ErrChargeNotFound  = errors.New("charge not found")
	ErrFieldNotFound   = errors.New("custom field not found")
)

// pick returns tx when the caller is inside a transaction, db otherwise.
func pick(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// likeEscaper neutralises LIKE wildcards with '!', which needs no quoting
// in MySQL, Postgres or SQLite string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-cased substring pattern for use with
// "LIKE ? ESCAPE '!'".
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// Page converts a 1-based page number into an offset.
func Page(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size, size
}
