package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// TxRunner is the transaction entry point services run their mutations
// through. *gorm.DB satisfies it; unit tests substitute a pass-through
// runner so repository mocks see the calls directly.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
