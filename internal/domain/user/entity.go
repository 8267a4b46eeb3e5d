// internal/domain/user/entity.go
package user

import (
	"time"

	"gorm.io/gorm"
)

// Cashier represents a terminal operator. The PIN is stored as a bcrypt hash;
// admins may additionally manage the exchange rate registry.
type Cashier struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	PINHash   string         `gorm:"not null;size:255" json:"-"`
	IsAdmin   bool           `gorm:"default:false" json:"is_admin"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Cashier) TableName() string {
	return "cashiers"
}
