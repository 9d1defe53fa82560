package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"restaurant_order/config"
	"restaurant_order/constants"
	"restaurant_order/helper"
	"restaurant_order/model"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ictZone = time.FixedZone("ICT", 7*3600)

// VNPay Service
type VNPay struct {
	Config model.VNPayConfig
}

func NewVNPay() *VNPay {
	return &VNPay{
		Config: model.VNPayConfig{
			TmnCode:    config.Config("VNP_TMNCODE"),
			HashSecret: config.Config("VNP_HASHSECRET"),
			BaseURL:    config.Config("VNP_URL"),
			ReturnURL:  config.Config("APP_URL") + "/api/v1/payment/vnpay/return",
			IPNURL:     config.Config("APP_URL") + "/api/v1/payment/vnpay/ipn",
		},
	}
}

// BuildPaymentUrl dựng URL redirect đã ký. Chuỗi ký và query gửi đi PHẢI dùng
// chung một bộ key đã sort byte-wise: ký trên value thô (chưa encode), query
// thì encode từng value. Lệch một ly ở bước này là VNPay báo sai chữ ký.
func (v *VNPay) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	// VNPay nhận amount nhân 100, qua codec chứ không nhân tay
	amount, err := helper.ToProviderUnits(req.Amount, helper.ProviderVNPay)
	if err != nil {
		return "", err
	}

	now := time.Now().In(ictZone)
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    v.Config.TmnCode,
		"vnp_Locale":     "vn",
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     strconv.FormatUint(uint64(req.OrderId), 10),
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  "other",
		"vnp_Amount":     strconv.FormatInt(amount, 10),
		"vnp_ReturnUrl":  v.Config.ReturnURL,
		"vnp_IpAddr":     req.IPAddr,
		"vnp_CreateDate": now.Format("20060102150405"),
		"vnp_ExpireDate": now.Add(15 * time.Minute).Format("20060102150405"),
	}

	keys := sortedKeys(params)
	secureHash := v.generateHash(signingString(keys, params))

	var query strings.Builder
	for i, k := range keys {
		if i > 0 {
			query.WriteByte('&')
		}
		query.WriteString(k)
		query.WriteByte('=')
		query.WriteString(url.QueryEscape(params[k]))
	}
	query.WriteString("&vnp_SecureHash=")
	query.WriteString(secureHash)

	return v.Config.BaseURL + "?" + query.String(), nil
}

// VerifyCallback xác minh và phân loại callback (return URL hoặc IPN).
// Thuần túy đọc: không bao giờ mutate đơn hàng ở đây. Thiếu/sai chữ ký trả
// IsValid=false cho caller tự rẽ nhánh, không phải error.
func (v *VNPay) VerifyCallback(query url.Values) model.PaymentResult {
	providedHash := query.Get("vnp_SecureHash")

	params := map[string]string{}
	for key, vals := range query {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}

	if providedHash == "" {
		return model.PaymentResult{IsValid: false, Message: "Thiếu chữ ký"}
	}

	keys := sortedKeys(params)
	expectedHash := v.generateHash(signingString(keys, params))
	if !hmac.Equal([]byte(strings.ToLower(providedHash)), []byte(expectedHash)) {
		return model.PaymentResult{IsValid: false, Message: constants.INVALID_SIGNATURE}
	}

	rawAmount, _ := strconv.ParseInt(params["vnp_Amount"], 10, 64)
	amountVnd, _ := helper.FromProviderUnits(rawAmount, helper.ProviderVNPay)
	orderId, _ := strconv.ParseUint(params["vnp_TxnRef"], 10, 64)

	code := params["vnp_ResponseCode"]
	message, ok := constants.VNPayResponseMessages[code]
	if !ok {
		message = "Mã phản hồi không xác định: " + code
	}

	return model.PaymentResult{
		IsValid:       true,
		IsSuccess:     code == "00",
		OrderId:       uint(orderId),
		Amount:        amountVnd,
		TransactionNo: params["vnp_TransactionNo"],
		ResponseCode:  code,
		Message:       message,
	}
}

// Helpers

// sortedKeys trả danh sách key sort tăng dần theo byte — thứ tự canonical
// dùng chung cho cả ký và dựng query
func sortedKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// signingString nối key=value thô bằng '&', đúng chuỗi mà HMAC chạy lên
func signingString(keys []string, params map[string]string) string {
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}

func (v *VNPay) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(v.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
