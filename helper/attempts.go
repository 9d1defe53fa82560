package helper

import (
	"log"
	"restaurant_order/constants"
	"restaurant_order/database"
	"restaurant_order/model"
	"time"

	"github.com/robfig/cron/v3"
)

var attemptScheduler *cron.Cron

// StartAttemptExpiryScheduler dọn các attempt quá hạn 15 phút (trùng với
// vnp_ExpireDate của URL đã phát hành). Attempt expired mở đường cho đơn
// pending phát hành artifact mới.
func StartAttemptExpiryScheduler() {
	attemptScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := attemptScheduler.AddFunc("* * * * *", ExpireStaleAttempts)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	attemptScheduler.Start()
	log.Println("Scheduler dọn payment attempt đã khởi động (mỗi phút)")
}

func StopAttemptExpiryScheduler() {
	if attemptScheduler != nil {
		attemptScheduler.Stop()
	}
}

func ExpireStaleAttempts() {
	result := database.DB.Model(&model.PaymentAttempt{}).
		Where("status = ? AND expires_at < ?", constants.AttemptStatusCreated, time.Now()).
		Update("status", constants.AttemptStatusExpired)

	if result.Error != nil {
		log.Printf("Lỗi dọn attempt quá hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[CRON] Đánh dấu %d payment attempt hết hạn", result.RowsAffected)
	}
}
