package dbutil

import (
	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"gorm.io/gorm"
)

// FindOne runs db.Find into a single T and reports errors.NotFound when no row matched.
func FindOne[T any](db *gorm.DB) (*T, error) {
	var item T
	result := db.Limit(1).Find(&item)
	if result.Error != nil {
		return nil, WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound
	}
	return &item, nil
}
