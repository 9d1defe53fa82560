package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"restaurant_order/constants"
	"restaurant_order/helper"
	"restaurant_order/model"
	"restaurant_order/validate"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCardGateway thay Stripe thật trong test
type fakeCardGateway struct {
	configured bool
	status     *model.IntentStatus
	statusErr  error
}

func (f *fakeCardGateway) Configured() bool { return f.configured }

func (f *fakeCardGateway) CreateIntent(input model.CreateIntentInput, amountVnd int64) (*model.IntentResult, error) {
	return &model.IntentResult{ClientSecret: "pi_123_secret", IntentId: "pi_123"}, nil
}

func (f *fakeCardGateway) RetrieveIntentStatus(intentId string) (*model.IntentStatus, error) {
	return f.status, f.statusErr
}

// recordingStore là OrderStore tối giản đếm số lần CAS chạy
type recordingStore struct {
	order         *model.Order
	completeCalls int
}

func (s *recordingStore) GetOrder(id uint) (*model.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, helper.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *recordingStore) CompleteOrder(id uint, method, providerRef string) (bool, error) {
	s.completeCalls++
	s.order.Status = constants.OrderStatusCompleted
	s.order.PaymentMethod = method
	s.order.ProviderReference = providerRef
	return true, nil
}

func (s *recordingStore) MarkAttemptSucceeded(orderId uint, providerRef string) error { return nil }

type noopNotifier struct{ calls int }

func (n *noopNotifier) PaymentConfirmed(order *model.Order, providerRef string) { n.calls++ }

func confirmApp(t *testing.T, gateway CardGateway, store helper.OrderStore, notify helper.Notifier) *fiber.App {
	t.Helper()
	InitPayment(gateway, helper.NewSettlement(store, notify))

	app := fiber.New()
	app.Post("/confirm", validate.ConfirmIntent(), ConfirmCardPayment)
	return app
}

func postJSON(app *fiber.App, path string, body any) (map[string]any, int, error) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var parsed map[string]any
	json.NewDecoder(resp.Body).Decode(&parsed)
	return parsed, resp.StatusCode, nil
}

// Intent chưa succeeded (requires_action): không settle, đơn giữ nguyên pending
func TestConfirmRequiresActionDoesNotSettle(t *testing.T) {
	store := &recordingStore{order: &model.Order{
		DTO:        model.DTO{ID: 42},
		TotalPrice: 150_000,
		Status:     constants.OrderStatusPending,
	}}
	notify := &noopNotifier{}
	gateway := &fakeCardGateway{
		configured: true,
		status: &model.IntentStatus{
			IntentId: "pi_123",
			Status:   "requires_action",
			Amount:   150_000,
			Currency: "vnd",
			Metadata: map[string]string{"orderId": "42"},
		},
	}

	app := confirmApp(t, gateway, store, notify)
	parsed, code, err := postJSON(app, "/confirm", fiber.Map{"orderId": 42, "intentId": "pi_123"})
	require.NoError(t, err)

	assert.Equal(t, 200, code)
	assert.Equal(t, false, parsed["success"])
	assert.Equal(t, "requires_action", parsed["status"])
	assert.Equal(t, 0, store.completeCalls)
	assert.Equal(t, constants.OrderStatusPending, store.order.Status)
	assert.Equal(t, 0, notify.calls)
}

func TestConfirmSucceededSettlesOrder(t *testing.T) {
	store := &recordingStore{order: &model.Order{
		DTO:        model.DTO{ID: 42},
		TotalPrice: 150_000,
		Status:     constants.OrderStatusPending,
	}}
	notify := &noopNotifier{}
	gateway := &fakeCardGateway{
		configured: true,
		status: &model.IntentStatus{
			IntentId: "pi_123",
			Status:   "succeeded",
			Amount:   150_000, // VND zero-decimal: không nhân 100
			Currency: "vnd",
			Metadata: map[string]string{"orderId": "42"},
		},
	}

	app := confirmApp(t, gateway, store, notify)
	parsed, code, err := postJSON(app, "/confirm", fiber.Map{"orderId": 42, "intentId": "pi_123"})
	require.NoError(t, err)

	assert.Equal(t, 200, code)
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, 1, store.completeCalls)
	assert.Equal(t, constants.OrderStatusCompleted, store.order.Status)
	assert.Equal(t, constants.PaymentMethodCard, store.order.PaymentMethod)
	assert.Equal(t, "pi_123", store.order.ProviderReference)
	assert.Equal(t, 1, notify.calls)
}

func TestConfirmRejectsIntentOfAnotherOrder(t *testing.T) {
	store := &recordingStore{order: &model.Order{
		DTO:        model.DTO{ID: 42},
		TotalPrice: 150_000,
		Status:     constants.OrderStatusPending,
	}}
	gateway := &fakeCardGateway{
		configured: true,
		status: &model.IntentStatus{
			IntentId: "pi_123",
			Status:   "succeeded",
			Amount:   150_000,
			Metadata: map[string]string{"orderId": "7"}, // intent của đơn khác
		},
	}

	app := confirmApp(t, gateway, store, &noopNotifier{})
	_, code, err := postJSON(app, "/confirm", fiber.Map{"orderId": 42, "intentId": "pi_123"})
	require.NoError(t, err)

	assert.Equal(t, 400, code)
	assert.Equal(t, 0, store.completeCalls)
}

func TestConfirmWhenGatewayNotConfigured(t *testing.T) {
	gateway := &fakeCardGateway{configured: false, statusErr: helper.ErrNotConfigured}
	app := confirmApp(t, gateway, &recordingStore{}, &noopNotifier{})

	_, code, err := postJSON(app, "/confirm", fiber.Map{"orderId": 42, "intentId": "pi_123"})
	require.NoError(t, err)
	assert.Equal(t, 503, code)
}

func TestCreateIntentNotConfiguredOutcome(t *testing.T) {
	InitPayment(&fakeCardGateway{configured: false}, helper.NewSettlement(&recordingStore{}, &noopNotifier{}))

	app := fiber.New()
	app.Post("/intent", validate.CreateIntent(), CreateCardIntent)

	parsed, code, err := postJSON(app, "/intent", fiber.Map{"orderId": 42})
	require.NoError(t, err)

	assert.Equal(t, 200, code)
	assert.Equal(t, true, parsed["notConfigured"])
}

// StripeService không có key: trả ErrNotConfigured chứ không giả intent
func TestStripeServiceWithoutKey(t *testing.T) {
	svc := &StripeService{}

	assert.False(t, svc.Configured())

	_, err := svc.CreateIntent(model.CreateIntentInput{OrderId: 1}, 50_000)
	assert.ErrorIs(t, err, helper.ErrNotConfigured)

	_, err = svc.RetrieveIntentStatus("pi_123")
	assert.ErrorIs(t, err, helper.ErrNotConfigured)
}
