package handler

import (
	"net/url"
	"restaurant_order/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVNPay() *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    "DEMOTMN1",
			HashSecret: "DEMOSECRETKEY123456789",
			BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
			ReturnURL:  "http://localhost:8002/api/v1/payment/vnpay/return",
		},
	}
}

func TestSigningStringIsDeterministic(t *testing.T) {
	v := testVNPay()
	params := map[string]string{
		"vnp_TxnRef":  "42",
		"vnp_Amount":  "15000000",
		"vnp_Command": "pay",
		"vnp_TmnCode": "DEMOTMN1",
	}

	keys := sortedKeys(params)
	first := v.generateHash(signingString(keys, params))
	for i := 0; i < 10; i++ {
		again := v.generateHash(signingString(sortedKeys(params), params))
		assert.Equal(t, first, again)
	}
}

func TestSigningStringSortsKeysByteWise(t *testing.T) {
	params := map[string]string{
		"vnp_Version": "2.1.0",
		"vnp_Amount":  "100",
		"vnp_TxnRef":  "1",
	}
	s := signingString(sortedKeys(params), params)
	assert.Equal(t, "vnp_Amount=100&vnp_TxnRef=1&vnp_Version=2.1.0", s)
}

// Bất biến mong manh nhất của cả subsystem: chuỗi ký dùng value thô, query
// gửi đi thì encode, cùng một bộ key đã sort. URL build ra phải verify lại
// được bằng chính verifier.
func TestBuildVerifyRoundTrip(t *testing.T) {
	v := testVNPay()

	paymentUrl, err := v.BuildPaymentUrl(model.PaymentRequest{
		OrderId:   42,
		Amount:    150_000,
		OrderInfo: "Thanh toan don hang 42 tai nha hang",
		IPAddr:    "203.113.1.7",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(paymentUrl, v.Config.BaseURL+"?"))

	rawQuery := paymentUrl[strings.Index(paymentUrl, "?")+1:]
	query, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)

	result := v.VerifyCallback(query)
	assert.True(t, result.IsValid, "URL vừa ký phải verify được")
	assert.Equal(t, uint(42), result.OrderId)
	assert.Equal(t, int64(150_000), result.Amount)
}

func TestVerifyCallbackRejectsTamperedAmount(t *testing.T) {
	v := testVNPay()

	paymentUrl, err := v.BuildPaymentUrl(model.PaymentRequest{
		OrderId:   42,
		Amount:    150_000,
		OrderInfo: "Thanh toan don hang 42",
		IPAddr:    "203.113.1.7",
	})
	require.NoError(t, err)

	query, err := url.ParseQuery(paymentUrl[strings.Index(paymentUrl, "?")+1:])
	require.NoError(t, err)

	// Sửa amount nhưng giữ nguyên hash cũ
	query.Set("vnp_Amount", "100")

	result := v.VerifyCallback(query)
	assert.False(t, result.IsValid)
	assert.False(t, result.IsSuccess)
}

func TestVerifyCallbackTamperAnyFieldChangesHash(t *testing.T) {
	v := testVNPay()

	paymentUrl, err := v.BuildPaymentUrl(model.PaymentRequest{
		OrderId:   7,
		Amount:    65_000,
		OrderInfo: "Pho bo tai",
		IPAddr:    "10.0.0.1",
	})
	require.NoError(t, err)

	base, err := url.ParseQuery(paymentUrl[strings.Index(paymentUrl, "?")+1:])
	require.NoError(t, err)

	for key := range base {
		if key == "vnp_SecureHash" {
			continue
		}
		query, _ := url.ParseQuery(base.Encode())
		query.Set(key, base.Get(key)+"x")
		result := v.VerifyCallback(query)
		assert.False(t, result.IsValid, "sửa %s mà vẫn verify được", key)
	}
}

// callbackQuery dựng một callback hợp lệ (ký đúng) với response code cho trước
func callbackQuery(v *VNPay, responseCode string) url.Values {
	params := map[string]string{
		"vnp_TmnCode":       "DEMOTMN1",
		"vnp_TxnRef":        "42",
		"vnp_Amount":        "15000000",
		"vnp_ResponseCode":  responseCode,
		"vnp_TransactionNo": "14226112",
		"vnp_BankCode":      "NCB",
		"vnp_PayDate":       "20260829143000",
		"vnp_OrderInfo":     "Thanh toan don hang 42",
	}
	hash := v.generateHash(signingString(sortedKeys(params), params))

	query := url.Values{}
	for k, val := range params {
		query.Set(k, val)
	}
	query.Set("vnp_SecureHash", hash)
	return query
}

func TestVerifyCallbackSuccessCode(t *testing.T) {
	v := testVNPay()
	result := v.VerifyCallback(callbackQuery(v, "00"))

	assert.True(t, result.IsValid)
	assert.True(t, result.IsSuccess)
	assert.Equal(t, uint(42), result.OrderId)
	assert.Equal(t, int64(150_000), result.Amount)
	assert.Equal(t, "14226112", result.TransactionNo)
}

func TestVerifyCallbackUserCancelledIsValidNotSuccess(t *testing.T) {
	v := testVNPay()
	result := v.VerifyCallback(callbackQuery(v, "24"))

	assert.True(t, result.IsValid, "hủy giao dịch vẫn là callback hợp lệ")
	assert.False(t, result.IsSuccess)
	assert.Equal(t, "24", result.ResponseCode)
}

func TestVerifyCallbackMissingHash(t *testing.T) {
	v := testVNPay()
	query := callbackQuery(v, "00")
	query.Del("vnp_SecureHash")

	result := v.VerifyCallback(query)
	assert.False(t, result.IsValid)
	assert.False(t, result.IsSuccess)
}

func TestVerifyCallbackIgnoresHashTypeField(t *testing.T) {
	v := testVNPay()
	query := callbackQuery(v, "00")
	// Một số bản tích hợp VNPay gửi kèm field này, không được đưa vào chuỗi ký
	query.Set("vnp_SecureHashType", "HMACSHA512")

	result := v.VerifyCallback(query)
	assert.True(t, result.IsValid)
}
