package validate

import (
	"fmt"
	"restaurant_order/model"

	"github.com/gofiber/fiber/v2"
)

func CreateVNPayPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateVNPayPaymentInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("paymentInput", input)
		return c.Next()
	}
}

func CreateIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateIntentInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("intentInput", input)
		return c.Next()
	}
}

func ConfirmIntent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ConfirmIntentInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("confirmInput", input)
		return c.Next()
	}
}
