package helper

import (
	"errors"
	"restaurant_order/constants"
	"restaurant_order/model"
	"time"

	"gorm.io/gorm"
)

// GormOrderStore là OrderStore chạy trên database.DB thật
type GormOrderStore struct {
	DB *gorm.DB
}

func (s *GormOrderStore) GetOrder(id uint) (*model.Order, error) {
	var order model.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *GormOrderStore) CompleteOrder(id uint, method, providerRef string) (bool, error) {
	now := time.Now()
	res := s.DB.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, constants.OrderStatusPending).
		Updates(map[string]any{
			"status":             constants.OrderStatusCompleted,
			"payment_method":     method,
			"provider_reference": providerRef,
			"paid_at":            now,
			"updated_at":         now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormOrderStore) MarkAttemptSucceeded(orderId uint, providerRef string) error {
	res := s.DB.Model(&model.PaymentAttempt{}).
		Where("order_id = ? AND provider_ref = ?", orderId, providerRef).
		Update("status", constants.AttemptStatusSucceeded)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Callback VNPay mang vnp_TransactionNo thay cho mã lúc phát hành:
		// đánh dấu attempt đang mở của đơn
		return s.DB.Model(&model.PaymentAttempt{}).
			Where("order_id = ? AND status = ?", orderId, constants.AttemptStatusCreated).
			Update("status", constants.AttemptStatusSucceeded).Error
	}
	return nil
}

// SupersedeOpenAttempts đóng các attempt còn mở của đơn trước khi phát hành
// artifact mới: đơn pending được phép thử lại, nhưng mỗi thời điểm chỉ một
// attempt hiệu lực
func SupersedeOpenAttempts(db *gorm.DB, orderId uint, provider string) error {
	return db.Model(&model.PaymentAttempt{}).
		Where("order_id = ? AND provider = ? AND status = ?", orderId, provider, constants.AttemptStatusCreated).
		Update("status", constants.AttemptStatusFailed).Error
}

// RecordAttempt lưu vết artifact vừa phát hành cho đơn. Unique
// (order_id, provider_ref) trong DB chặn attempt trùng mã giao dịch.
func RecordAttempt(db *gorm.DB, orderId uint, provider, providerRef string, amount int64) error {
	attempt := model.PaymentAttempt{
		OrderId:     orderId,
		Provider:    provider,
		ProviderRef: providerRef,
		Amount:      amount,
		Status:      constants.AttemptStatusCreated,
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	}
	return db.Create(&attempt).Error
}
