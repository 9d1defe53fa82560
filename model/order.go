package model

import "time"

// Order là bàn giao giữa luồng gọi món (tạo đơn, ngoài phạm vi settlement)
// và settlement. Settlement chỉ được phép chuyển pending → completed bằng
// conditional update, không bao giờ xóa đơn.
type Order struct {
	DTO
	CustomerID    *uint       `json:"customerId,omitempty"` // null nếu khách vãng lai (guest)
	TableID       uint        `json:"tableId"`
	Table         DiningTable `gorm:"foreignKey:TableID" json:"table"`
	TotalPrice    int64       `gorm:"not null" json:"totalPrice"` // VND, bất biến sau khi tạo
	Status        string      `gorm:"default:pending;index" json:"status"`
	PaymentMethod string      `json:"paymentMethod"` // vnpay, card, cash, momo, zalo
	// Mã giao dịch phía cổng thanh toán, ghi đúng một lần lúc chuyển completed
	ProviderReference string      `json:"providerReference"`
	CustomerName      string      `json:"customerName"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	Note              string      `json:"note"`
	Items             []OrderItem `gorm:"foreignKey:OrderId" json:"items"`
	PaidAt            *time.Time  `json:"paidAt,omitempty"`
}

type OrderItem struct {
	DTO
	OrderId    uint     `gorm:"not null;index" json:"orderId"`
	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menuItem"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	UnitPrice  int64    `gorm:"not null" json:"unitPrice"` // VND tại thời điểm đặt
}

type OrderResponse struct {
	ID                uint       `json:"id"`
	TableID           uint       `json:"tableId"`
	TotalPrice        int64      `json:"totalPrice"`
	Status            string     `json:"status"`
	PaymentMethod     string     `json:"paymentMethod"`
	ProviderReference string     `json:"providerReference"`
	CustomerName      string     `json:"customerName"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
