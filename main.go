package main

import (
	"log"
	"restaurant_order/database"
	"restaurant_order/handler"
	"restaurant_order/helper"
	"restaurant_order/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	// Client cổng thẻ build một lần rồi inject, không lazy-init global
	stripeService := handler.NewStripeService()
	settlement := helper.NewSettlement(
		&helper.GormOrderStore{DB: database.DB},
		&helper.OrderNotifier{Redis: database.Redis},
	)
	handler.InitPayment(stripeService, settlement)

	helper.StartAttemptExpiryScheduler()
	defer helper.StopAttemptExpiryScheduler()
	helper.StartReconcileScheduler(stripeService, settlement)
	defer helper.StopReconcileScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
