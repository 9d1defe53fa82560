package model

type VNPayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

type PaymentRequest struct {
	OrderId   uint   `json:"orderId"`
	Amount    int64  `json:"amount"` // VND, chưa nhân 100
	OrderInfo string `json:"orderInfo"`
	IPAddr    string `json:"ipAddr"`
}

// PaymentResult là kết quả đã phân loại của một callback VNPay.
// IsValid = chữ ký đúng; IsSuccess = chữ ký đúng và vnp_ResponseCode == "00".
// Verify không bao giờ tự mutate đơn hàng.
type PaymentResult struct {
	IsValid       bool   `json:"isValid"`
	IsSuccess     bool   `json:"isSuccess"`
	OrderId       uint   `json:"orderId"`
	Amount        int64  `json:"amount"` // VND, đã chia 100
	TransactionNo string `json:"transactionNo"`
	ResponseCode  string `json:"responseCode"`
	Message       string `json:"message"`
}
