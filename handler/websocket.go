package handler

import (
	"context"
	"fmt"
	"restaurant_order/database"
	"restaurant_order/model"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

// OrderStatusSocket giữ kết nối WS cho client chờ thanh toán: gửi trạng thái
// hiện tại ngay khi connect, sau đó relay các message settlement publish lên
// kênh Redis order:{id}
func OrderStatusSocket(c *websocket.Conn) {
	orderIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(orderIdStr, 10, 64)
	orderId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if clients[orderId] != nil {
			delete(clients[orderId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[orderId] == nil {
		clients[orderId] = make(map[*websocket.Conn]bool)
	}
	clients[orderId][c] = true
	mu.Unlock()

	// Gửi trạng thái hiện tại lần đầu
	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err == nil {
		c.WriteJSON(map[string]any{
			"orderId":       order.ID,
			"status":        order.Status,
			"paymentMethod": order.PaymentMethod,
			"transactionId": order.ProviderReference,
		})
	}

	pubsub := database.Redis.Subscribe(
		context.Background(),
		fmt.Sprintf("order:%d", orderId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[orderId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[orderId], conn)
			}
		}
		mu.Unlock()
	}
}
