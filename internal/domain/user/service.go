// internal/domain/user/service.go
package user

import (
	"fmt"

	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles cashier authentication
type Service struct {
	db *gorm.DB
}

// NewService creates a new user service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Authenticate verifies a cashier's PIN and returns the cashier on success
func (s *Service) Authenticate(username, pin string) (*Cashier, error) {
	var cashier Cashier
	err := s.db.Where("username = ? AND is_active = ?", username, true).First(&cashier).Error
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(pin, cashier.PINHash) {
		return nil, fmt.Errorf("invalid credentials")
	}

	return &cashier, nil
}
