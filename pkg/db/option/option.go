package option

import (
	"strings"

	"github.com/smallbiznis/backoffice/pkg/db/pagination"
	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before it executes.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type QueryOptionFunc func(db *gorm.DB) *gorm.DB

func (f QueryOptionFunc) Apply(db *gorm.DB) *gorm.DB {
	return f(db)
}

// WithSortBy orders by each clause in turn, e.g. "product_code asc".
func WithSortBy(clauses ...string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		for _, clause := range clauses {
			clause = strings.TrimSpace(clause)
			if clause == "" {
				continue
			}
			db = db.Order(clause)
		}
		return db
	})
}

func WithWindow(page pagination.Page) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit())
	})
}

func WithWhere(query any, args ...any) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	})
}

// likeEscaper neutralizes LIKE wildcards in user input. "!" is the escape
// character because a backslash literal is itself escaped on MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// WithContains matches value as a case-insensitive substring of any column.
// Wildcards in value match literally. Empty values leave the statement
// untouched.
func WithContains(value string, columns ...string) QueryOption {
	return QueryOptionFunc(func(db *gorm.DB) *gorm.DB {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(value) + "%"
		parts := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			parts = append(parts, "LOWER("+column+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}
		return db.Where(strings.Join(parts, " OR "), args...)
	})
}
