package handler

import (
	"log"
	"restaurant_order/config"
	"restaurant_order/helper"
	"restaurant_order/model"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// CardGateway là mặt cắt cổng thẻ mà handler và job đối soát dùng, để test
// thay fake gateway không cần gọi Stripe thật
type CardGateway interface {
	Configured() bool
	CreateIntent(input model.CreateIntentInput, amountVnd int64) (*model.IntentResult, error)
	RetrieveIntentStatus(intentId string) (*model.IntentStatus, error)
}

// StripeService bọc client Stripe. Client build đúng một lần lúc khởi động
// từ secret key trong config rồi inject xuống — không lazy-init qua biến
// global để tránh shared mutable state.
type StripeService struct {
	api *client.API
}

func NewStripeService() *StripeService {
	key := config.Config("STRIPE_SECRET_KEY")
	if key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY trống, thanh toán thẻ sẽ trả về chưa cấu hình")
		return &StripeService{}
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeService{api: api}
}

func (s *StripeService) Configured() bool {
	return s.api != nil
}

// CreateIntent tạo payment intent cho đơn. Không có key cấu hình thì trả
// ErrNotConfigured — tuyệt đối không "giả" một intent thành công.
func (s *StripeService) CreateIntent(input model.CreateIntentInput, amountVnd int64) (*model.IntentResult, error) {
	if s.api == nil {
		return nil, helper.ErrNotConfigured
	}

	// VND là zero-decimal với Stripe: amount giữ nguyên, không nhân 100
	amount, err := helper.ToProviderUnits(amountVnd, helper.ProviderCard)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyVND)),
	}
	if input.Description != "" {
		params.Description = stripe.String(input.Description)
	}
	if input.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(input.CustomerEmail)
	}
	params.AddMetadata("orderId", strconv.FormatUint(uint64(input.OrderId), 10))
	params.AddMetadata("customerName", input.CustomerName)
	params.AddMetadata("customerEmail", input.CustomerEmail)
	params.IdempotencyKey = stripe.String(uuid.NewString())

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}

	return &model.IntentResult{
		ClientSecret: pi.ClientSecret,
		IntentId:     pi.ID,
	}, nil
}

// RetrieveIntentStatus hỏi lại intent trực tiếp từ server Stripe. Trạng thái
// chỉ được tin khi lấy từ đây — client tự báo "đã trả tiền" không có giá trị.
func (s *StripeService) RetrieveIntentStatus(intentId string) (*model.IntentStatus, error) {
	if s.api == nil {
		return nil, helper.ErrNotConfigured
	}

	pi, err := s.api.PaymentIntents.Get(intentId, nil)
	if err != nil {
		return nil, err
	}

	return &model.IntentStatus{
		IntentId: pi.ID,
		Status:   string(pi.Status),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Metadata: pi.Metadata,
	}, nil
}
