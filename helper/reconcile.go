package helper

import (
	"log"
	"restaurant_order/constants"
	"restaurant_order/database"
	"restaurant_order/model"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// IntentRetriever là phần của cổng thẻ mà job đối soát cần: hỏi lại trạng
// thái intent trực tiếp từ server cổng (authoritative).
type IntentRetriever interface {
	RetrieveIntentStatus(intentId string) (*model.IntentStatus, error)
}

var reconcileScheduler gocron.Scheduler

// StartReconcileScheduler quét định kỳ các đơn pending còn giữ intent chưa
// hết hạn: client có thể đã thanh toán xong nhưng không gọi confirm (đóng
// tab, rớt mạng). Hỏi lại cổng và settle qua đúng coordinator, CAS trong
// store đảm bảo không đụng độ với confirm chạy song song.
func StartReconcileScheduler(retriever IntentRetriever, settlement *Settlement) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	reconcileScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			ReconcilePendingIntents(retriever, settlement)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Payment reconcile scheduler started (5 phút/lần)")
}

func StopReconcileScheduler() {
	if reconcileScheduler != nil {
		_ = reconcileScheduler.Shutdown()
	}
}

// ReconcilePendingIntents xử lý một lượt quét
func ReconcilePendingIntents(retriever IntentRetriever, settlement *Settlement) {
	log.Println("[CRON] ReconcilePendingIntents triggered")

	var attempts []model.PaymentAttempt
	err := database.DB.
		Joins("JOIN orders ON orders.id = payment_attempts.order_id AND orders.status = ?", constants.OrderStatusPending).
		Where("payment_attempts.provider = ? AND payment_attempts.status = ?", ProviderCard, constants.AttemptStatusCreated).
		Where("payment_attempts.created_at < ?", time.Now().Add(-1*time.Minute)).
		Find(&attempts).Error
	if err != nil {
		log.Printf("Lỗi quét attempt chờ đối soát: %v", err)
		return
	}

	for _, attempt := range attempts {
		status, err := retriever.RetrieveIntentStatus(attempt.ProviderRef)
		if err != nil {
			log.Printf("Lỗi hỏi lại intent %s: %v", attempt.ProviderRef, err)
			continue
		}
		if status.Status != "succeeded" {
			continue
		}

		amount, err := FromProviderUnits(status.Amount, ProviderCard)
		if err != nil {
			log.Printf("Intent %s có amount lạ %d: %v", attempt.ProviderRef, status.Amount, err)
			continue
		}

		result, err := settlement.Settle(SettlementOutcome{
			OrderId:     attempt.OrderId,
			Amount:      amount,
			Method:      constants.PaymentMethodCard,
			ProviderRef: attempt.ProviderRef,
		})
		if err != nil {
			log.Printf("Lỗi settle đơn %d khi đối soát: %v", attempt.OrderId, err)
			continue
		}
		if result.Transitioned {
			log.Printf("[CRON] Đối soát hoàn tất đơn %d qua intent %s", attempt.OrderId, attempt.ProviderRef)
		}
	}
}
