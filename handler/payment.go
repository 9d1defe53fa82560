package handler

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"restaurant_order/config"
	"restaurant_order/constants"
	"restaurant_order/database"
	"restaurant_order/helper"
	"restaurant_order/model"
	"restaurant_order/utils"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Cổng thẻ và settlement coordinator được inject từ main lúc khởi động
var (
	cardGateway CardGateway
	settlement  *helper.Settlement
)

func InitPayment(card CardGateway, settle *helper.Settlement) {
	cardGateway = card
	settlement = settle
}

// loadPendingOrder tải đơn và kiểm tra còn pending; đơn của khách khác (nếu
// đơn có gắn customer) thì từ chối
func loadPendingOrder(c *fiber.Ctx, orderId uint) (*model.Order, error) {
	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, constants.ORDER_NOT_FOUND)
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Lỗi truy vấn đơn hàng: %s", err.Error()))
	}

	claim := helper.GetInfoCustomerFromToken(c)
	if order.CustomerID != nil && claim.CustomerId != 0 && *order.CustomerID != claim.CustomerId {
		return nil, fiber.NewError(fiber.StatusForbidden, "Đơn hàng không thuộc về bạn")
	}

	if order.Status != constants.OrderStatusPending {
		return nil, fiber.NewError(fiber.StatusBadRequest, constants.ORDER_NOT_PENDING)
	}
	return &order, nil
}

// CreateVNPayPayment phát hành URL redirect VNPay cho một đơn pending
func CreateVNPayPayment(c *fiber.Ctx) error {
	input := c.Locals("paymentInput").(model.CreateVNPayPaymentInput)

	order, err := loadPendingOrder(c, input.OrderId)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	vnpay := NewVNPay()
	req := model.PaymentRequest{
		OrderId:   order.ID,
		Amount:    order.TotalPrice,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %d tai nha hang", order.ID),
		IPAddr:    c.IP(),
	}

	paymentUrl, err := vnpay.BuildPaymentUrl(req)
	if err != nil {
		if errors.Is(err, helper.ErrInvalidAmount) {
			return c.Status(400).JSON(fiber.Map{"error": helper.ErrInvalidAmount.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": constants.PAYMENT_URL_FAILED})
	}

	// Đơn pending được thử lại, nhưng mỗi thời điểm chỉ một attempt hiệu lực
	attemptRef := fmt.Sprintf("%d-%s", order.ID, time.Now().In(ictZone).Format("20060102150405"))
	if err := helper.SupersedeOpenAttempts(database.DB, order.ID, helper.ProviderVNPay); err != nil {
		log.Printf("Lỗi đóng attempt cũ của đơn %d: %v", order.ID, err)
	}
	if err := helper.RecordAttempt(database.DB, order.ID, helper.ProviderVNPay, attemptRef, order.TotalPrice); err != nil {
		log.Printf("Lỗi ghi attempt của đơn %d: %v", order.ID, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Tạo thanh toán thành công",
		"paymentUrl": paymentUrl,
		"orderId":    order.ID,
	})
}

// VNPayReturn nhận khách quay về từ trang VNPay. Xác minh → settle → redirect
// về UI kèm mã lý do đã phân loại; mọi nhánh lỗi đều là redirect, không 500.
func VNPayReturn(c *fiber.Ctx) error {
	vnpay := NewVNPay()
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	result := vnpay.VerifyCallback(query)

	appURL := config.Config("APP_URL")
	if !result.IsValid {
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=invalid_signature", appURL))
	}
	if !result.IsSuccess {
		// Đơn vẫn pending, khách có thể thử lại với artifact mới
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", appURL, result.ResponseCode))
	}

	_, err := settlement.Settle(helper.SettlementOutcome{
		OrderId:     result.OrderId,
		Amount:      result.Amount,
		Method:      constants.PaymentMethodVNPay,
		ProviderRef: result.TransactionNo,
	})
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=order_not_found", appURL))
		case errors.Is(err, helper.ErrAmountMismatch):
			return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=amount_mismatch", appURL))
		case errors.Is(err, helper.ErrTransientNetwork):
			// Tiền đã trừ phía VNPay, DB sẽ được đối soát sau — không báo
			// thất bại với khách
		default:
			return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=99", appURL))
		}
	}

	return c.Redirect(fmt.Sprintf("%s/payment-success?orderId=%d&transactionId=%s",
		appURL, result.OrderId, result.TransactionNo))
}

// VNPayIPN là kênh server-to-server của VNPay, response theo bộ RspCode của
// họ. Callback trùng lặp trả 02 nhờ CAS trong settlement.
func VNPayIPN(c *fiber.Ctx) error {
	vnpay := NewVNPay()
	query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	result := vnpay.VerifyCallback(query)

	if !result.IsValid {
		return c.JSON(fiber.Map{"RspCode": "97", "Message": "Invalid signature"})
	}

	if !result.IsSuccess {
		// Giao dịch thất bại/hủy: đơn giữ nguyên pending, xác nhận đã nhận IPN
		return c.JSON(fiber.Map{"RspCode": "00", "Message": "Confirm received"})
	}

	res, err := settlement.Settle(helper.SettlementOutcome{
		OrderId:     result.OrderId,
		Amount:      result.Amount,
		Method:      constants.PaymentMethodVNPay,
		ProviderRef: result.TransactionNo,
	})
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return c.JSON(fiber.Map{"RspCode": "01", "Message": "Order not found"})
		case errors.Is(err, helper.ErrAmountMismatch):
			return c.JSON(fiber.Map{"RspCode": "04", "Message": "Invalid amount"})
		default:
			return c.JSON(fiber.Map{"RspCode": "99", "Message": "Unknown error"})
		}
	}

	if res.AlreadySettled {
		return c.JSON(fiber.Map{"RspCode": "02", "Message": "Order already confirmed"})
	}
	return c.JSON(fiber.Map{"RspCode": "00", "Message": "Success"})
}

// CreateCardIntent tạo payment intent cho thanh toán thẻ
func CreateCardIntent(c *fiber.Ctx) error {
	input := c.Locals("intentInput").(model.CreateIntentInput)

	if !cardGateway.Configured() {
		// Không bao giờ giả một intent thành công khi thiếu cấu hình
		return c.JSON(fiber.Map{"notConfigured": true})
	}

	order, err := loadPendingOrder(c, input.OrderId)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Description == "" {
		input.Description = fmt.Sprintf("Thanh toan don hang %d tai nha hang", order.ID)
	}

	result, err := cardGateway.CreateIntent(input, order.TotalPrice)
	if err != nil {
		if errors.Is(err, helper.ErrInvalidAmount) {
			return c.Status(400).JSON(fiber.Map{"error": helper.ErrInvalidAmount.Error()})
		}
		log.Printf("Lỗi tạo intent cho đơn %d: %v", order.ID, err)
		return c.Status(502).JSON(fiber.Map{"error": "Lỗi tạo payment intent"})
	}

	if err := helper.SupersedeOpenAttempts(database.DB, order.ID, helper.ProviderCard); err != nil {
		log.Printf("Lỗi đóng attempt cũ của đơn %d: %v", order.ID, err)
	}
	if err := helper.RecordAttempt(database.DB, order.ID, helper.ProviderCard, result.IntentId, order.TotalPrice); err != nil {
		log.Printf("Lỗi ghi attempt của đơn %d: %v", order.ID, err)
	}

	return c.JSON(fiber.Map{
		"clientSecret": result.ClientSecret,
		"intentId":     result.IntentId,
	})
}

// ConfirmCardPayment: client báo đã xác nhận intent → hỏi lại Stripe rồi mới
// settle. Trạng thái khác succeeded trả success=false, đơn giữ nguyên pending.
func ConfirmCardPayment(c *fiber.Ctx) error {
	input := c.Locals("confirmInput").(model.ConfirmIntentInput)

	status, err := cardGateway.RetrieveIntentStatus(input.IntentId)
	if err != nil {
		if errors.Is(err, helper.ErrNotConfigured) {
			return c.Status(503).JSON(fiber.Map{"error": constants.PAYMENT_NOT_CONFIGURED})
		}
		log.Printf("Lỗi hỏi lại intent %s: %v", input.IntentId, err)
		return c.Status(502).JSON(fiber.Map{"error": "Không hỏi được trạng thái thanh toán"})
	}

	// Intent phải thuộc đúng đơn client khai
	if status.Metadata["orderId"] != strconv.FormatUint(uint64(input.OrderId), 10) {
		return c.Status(400).JSON(fiber.Map{"error": "Intent không thuộc đơn hàng này"})
	}

	if status.Status != "succeeded" {
		return c.JSON(fiber.Map{"success": false, "status": status.Status})
	}

	amountVnd, err := helper.FromProviderUnits(status.Amount, helper.ProviderCard)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": helper.ErrInvalidAmount.Error()})
	}

	_, err = settlement.Settle(helper.SettlementOutcome{
		OrderId:     input.OrderId,
		Amount:      amountVnd,
		Method:      constants.PaymentMethodCard,
		ProviderRef: status.IntentId,
	})
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrOrderNotFound):
			return c.Status(404).JSON(fiber.Map{"error": constants.ORDER_NOT_FOUND})
		case errors.Is(err, helper.ErrAmountMismatch):
			return c.Status(400).JSON(fiber.Map{"error": constants.AMOUNT_MISMATCH})
		case errors.Is(err, helper.ErrTransientNetwork):
			// Stripe đã xác nhận tiền; job đối soát sẽ hoàn tất đơn
		default:
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"success": true, "orderId": input.OrderId})
}

// PaymentQR trả PNG QR của URL thanh toán để khách quét tại bàn
func PaymentQR(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))

	order, err := loadPendingOrder(c, orderId)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	vnpay := NewVNPay()
	paymentUrl, err := vnpay.BuildPaymentUrl(model.PaymentRequest{
		OrderId:   order.ID,
		Amount:    order.TotalPrice,
		OrderInfo: fmt.Sprintf("Thanh toan don hang %d tai nha hang", order.ID),
		IPAddr:    c.IP(),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": constants.PAYMENT_URL_FAILED})
	}

	png, err := utils.GenerateQRCode(paymentUrl, 256)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Lỗi tạo QR"})
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
