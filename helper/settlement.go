package helper

import (
	"log"
	"restaurant_order/constants"
	"restaurant_order/model"
	"time"
)

// SettlementOutcome là kết quả thanh toán ĐÃ được xác minh (chữ ký VNPay
// đúng, hoặc intent status = succeeded lấy từ server cổng thẻ). Coordinator
// không tự xác minh lại, chỉ đối chiếu với đơn và thực hiện chuyển trạng thái.
type SettlementOutcome struct {
	OrderId     uint
	Amount      int64 // VND chuẩn, đã decode qua amount codec
	Method      string
	ProviderRef string
}

type SettleResult struct {
	Transitioned   bool
	AlreadySettled bool
}

// OrderStore là mặt cắt đọc/ghi đơn hàng mà settlement cần.
// CompleteOrder là conditional update WHERE status='pending' — CAS tại tầng
// storage, đồng thời là idempotency guard: update trúng 0 dòng nghĩa là một
// attempt khác đã thắng.
type OrderStore interface {
	GetOrder(id uint) (*model.Order, error)
	CompleteOrder(id uint, method, providerRef string) (bool, error)
	MarkAttemptSucceeded(orderId uint, providerRef string) error
}

// Notifier gửi thông báo xác nhận thanh toán, fire-and-forget: lỗi thông báo
// không bao giờ được coi là lỗi settlement.
type Notifier interface {
	PaymentConfirmed(order *model.Order, providerRef string)
}

type Settlement struct {
	Store  OrderStore
	Notify Notifier
}

func NewSettlement(store OrderStore, notify Notifier) *Settlement {
	return &Settlement{Store: store, Notify: notify}
}

// Settle chuyển đơn pending → completed đúng một lần. Gọi lặp lại với cùng
// outcome (callback trùng, user bấm lại) là no-op thành công. Đơn không còn
// pending thì outcome hợp lệ đến đâu cũng không mutate gì thêm.
func (s *Settlement) Settle(outcome SettlementOutcome) (*SettleResult, error) {
	order, err := s.Store.GetOrder(outcome.OrderId)
	if err != nil {
		return nil, err
	}

	if order.Status != constants.OrderStatusPending {
		// completed hoặc đã sang luồng bếp: ngoài phạm vi settlement
		return &SettleResult{AlreadySettled: true}, nil
	}

	// Sai số tiền là từ chối thẳng, không bao giờ tự "sửa" theo callback
	if order.TotalPrice != outcome.Amount {
		return nil, ErrAmountMismatch
	}

	transitioned, err := s.Store.CompleteOrder(outcome.OrderId, outcome.Method, outcome.ProviderRef)
	if err != nil {
		// Tiền đã được cổng xác nhận, lỗi ghi DB lúc này không phải là lỗi
		// thanh toán: retry đúng một lần rồi ghi nhận gap để đối soát
		time.Sleep(200 * time.Millisecond)
		transitioned, err = s.Store.CompleteOrder(outcome.OrderId, outcome.Method, outcome.ProviderRef)
		if err != nil {
			log.Printf("[SETTLE] reconcile-gap: đơn %d đã thanh toán (%s) nhưng chưa cập nhật được: %v",
				outcome.OrderId, outcome.ProviderRef, err)
			return nil, ErrTransientNetwork
		}
	}

	if !transitioned {
		// Một attempt song song đã thắng CAS trước
		return &SettleResult{AlreadySettled: true}, nil
	}

	if err := s.Store.MarkAttemptSucceeded(outcome.OrderId, outcome.ProviderRef); err != nil {
		log.Printf("[SETTLE] không cập nhật được attempt %s của đơn %d: %v", outcome.ProviderRef, outcome.OrderId, err)
	}

	// Chỉ dòng thật sự chuyển trạng thái mới phát thông báo
	order.Status = constants.OrderStatusCompleted
	order.PaymentMethod = outcome.Method
	order.ProviderReference = outcome.ProviderRef
	s.Notify.PaymentConfirmed(order, outcome.ProviderRef)

	return &SettleResult{Transitioned: true}, nil
}
