package model

import "time"

// PaymentAttempt lưu vết từng lần phát hành payment artifact cho một đơn.
// Unique (order_id, provider_ref) chặn hai attempt trùng mã giao dịch và
// cho biết callback trùng lặp nào "thắng" khi đối soát.
type PaymentAttempt struct {
	DTO
	OrderId     uint      `gorm:"not null;index;uniqueIndex:idx_order_provider_ref" json:"orderId"`
	Provider    string    `gorm:"not null" json:"provider"` // vnpay, card
	ProviderRef string    `gorm:"not null;uniqueIndex:idx_order_provider_ref" json:"providerRef"`
	Amount      int64     `gorm:"not null" json:"amount"` // VND
	Status      string    `gorm:"default:created;index" json:"status"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type CreateVNPayPaymentInput struct {
	OrderId uint `json:"orderId" validate:"required,gt=0"`
}

type CreateIntentInput struct {
	OrderId       uint   `json:"orderId" validate:"required,gt=0"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	CustomerName  string `json:"customerName"`
	Description   string `json:"description"`
}

type ConfirmIntentInput struct {
	OrderId  uint   `json:"orderId" validate:"required,gt=0"`
	IntentId string `json:"intentId" validate:"required"`
}

// IntentResult trả về cho client sau khi tạo payment intent
type IntentResult struct {
	ClientSecret string `json:"clientSecret"`
	IntentId     string `json:"intentId"`
}

// IntentStatus là trạng thái intent lấy trực tiếp từ server cổng thanh toán,
// kèm amount/currency/metadata để đối chiếu với đơn hàng.
type IntentStatus struct {
	IntentId string            `json:"intentId"`
	Status   string            `json:"status"` // requires_payment_method, requires_action, succeeded...
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}
