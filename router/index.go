package router

import (
	"restaurant_order/handler"
	"restaurant_order/middleware"
	"restaurant_order/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), handler.GetOrders)
	order.Get("/:orderId", middleware.OptionalJWT(), validate.GetById("orderId"), handler.GetOrderById)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/vnpay", middleware.OptionalJWT(), validate.CreateVNPayPayment(), handler.CreateVNPayPayment)
	payment.Get("/vnpay/return", handler.VNPayReturn)
	payment.Get("/vnpay/ipn", handler.VNPayIPN)
	payment.Post("/intent", middleware.OptionalJWT(), validate.CreateIntent(), handler.CreateCardIntent)
	payment.Post("/intent/confirm", middleware.OptionalJWT(), validate.ConfirmIntent(), handler.ConfirmCardPayment)
	payment.Get("/:orderId/qr", middleware.OptionalJWT(), validate.GetById("orderId"), handler.PaymentQR)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/order/:id", websocket.New(handler.OrderStatusSocket))
}
