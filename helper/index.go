package helper

import (
	"log"
	"restaurant_order/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetInfoCustomerFromToken đọc claim từ token đã được middleware parse.
// Không có token hợp lệ → coi là khách vãng lai (guest).
func GetInfoCustomerFromToken(c *fiber.Ctx) model.TokenClaim {
	var guestClaim = model.TokenClaim{
		CustomerId: 0,
		Username:   "",
	}

	u := c.Locals("user")
	if u == nil {
		return guestClaim
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		log.Println("Invalid token type → guest")
		return guestClaim
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		log.Println("Invalid claims type → guest")
		return guestClaim
	}

	claim := guestClaim
	if cid, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(cid)
	}
	if aid, ok := claims["accountId"].(float64); ok {
		claim.AccountId = uint(aid)
	}
	if username, ok := claims["username"].(string); ok {
		claim.Username = username
	}
	return claim
}
