package repository

import (
	"strings"

	"dawaksahl-api/internal/domain/entity"

	"gorm.io/gorm"
)

// paginate applies offset and limit; a zero limit leaves the query unbounded
func paginate(page entity.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds an ILIKE pattern matching the term anywhere
func contains(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// startsWith builds a LIKE pattern anchored at the beginning
func startsWith(term string) string {
	return likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// count runs COUNT(*) on a copy so the query can still be used to fetch the page
func count(query *gorm.DB) (int64, error) {
	var total int64
	err := query.Session(&gorm.Session{}).Count(&total).Error
	return total, err
}
