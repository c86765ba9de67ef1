package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/comeoffice/rank_booking/models"
)

// GormOrderStore backs the reconciliation core with Postgres.
type GormOrderStore struct {
	DB *gorm.DB
}

func (s *GormOrderStore) FindByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ApproveIfNotApproved is a single conditional UPDATE. The status guard in
// the WHERE clause is what makes concurrent confirmations safe: only one of
// them can match a non-approved row, everyone else sees zero rows affected.
func (s *GormOrderStore) ApproveIfNotApproved(orderID string, meta PaymentMeta) (*models.Order, error) {
	updates := map[string]interface{}{
		"status": models.OrderStatusApproved,
	}
	if meta.PaymentID != "" {
		updates["cashfree_payment_id"] = meta.PaymentID
	}
	if meta.PaymentStatus != "" {
		updates["cashfree_payment_status"] = meta.PaymentStatus
	}
	if meta.PaymentMode != "" {
		updates["cashfree_payment_mode"] = meta.PaymentMode
	}

	result := s.DB.Model(&models.Order{}).
		Where("order_id = ? AND status <> ?", orderID, models.OrderStatusApproved).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return s.FindByOrderID(orderID)
}
