package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"restaurant_order/model"
	"restaurant_order/utils"

	"github.com/redis/go-redis/v9"
)

// OrderNotifier đẩy xác nhận thanh toán ra ngoài: publish Redis cho các
// client đang mở websocket và gửi email cho khách. Cả hai đều async, lỗi chỉ
// log — settlement đã xong trước khi thông báo chạy.
type OrderNotifier struct {
	Redis *redis.Client
}

func (n *OrderNotifier) PaymentConfirmed(order *model.Order, providerRef string) {
	go func() {
		if n.Redis != nil {
			payload, _ := json.Marshal(map[string]any{
				"orderId":       order.ID,
				"status":        order.Status,
				"paymentMethod": order.PaymentMethod,
				"transactionId": providerRef,
			})
			channel := fmt.Sprintf("order:%d", order.ID)
			if err := n.Redis.Publish(context.Background(), channel, payload).Err(); err != nil {
				log.Printf("Lỗi publish trạng thái đơn %d: %v", order.ID, err)
			}
		}

		if order.Email != "" {
			utils.SendPaymentConfirmationEmail(order.Email, utils.PaymentConfirmationData{
				OrderId:       order.ID,
				CustomerName:  order.CustomerName,
				TotalPrice:    order.TotalPrice,
				PaymentMethod: order.PaymentMethod,
				TransactionId: providerRef,
			})
		}
	}()
}
