package constants

const (
	DATA_INPUT_IS_NOT_NUMBER = "Dữ liệu đầu vào không phải là số"
	ORDER_NOT_FOUND          = "Đơn hàng không tồn tại"
	ORDER_NOT_PENDING        = "Đơn hàng không ở trạng thái chờ thanh toán"
	PAYMENT_URL_FAILED       = "Lỗi tạo payment URL"
	PAYMENT_NOT_CONFIGURED   = "Cổng thanh toán thẻ chưa được cấu hình"
	INVALID_SIGNATURE        = "Chữ ký không hợp lệ"
	AMOUNT_MISMATCH          = "Số tiền thanh toán không khớp với đơn hàng"
)

// Trạng thái đơn hàng. Settlement chỉ chuyển pending → completed,
// ba trạng thái bếp (confirmed/preparing/ready) thuộc luồng khác.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

// Phương thức thanh toán
const (
	PaymentMethodVNPay = "vnpay"
	PaymentMethodCard  = "card"
	PaymentMethodCash  = "cash"
	PaymentMethodMomo  = "momo"
	PaymentMethodZalo  = "zalo"
)

// Trạng thái payment attempt
const (
	AttemptStatusCreated   = "created"
	AttemptStatusSucceeded = "succeeded"
	AttemptStatusFailed    = "failed"
	AttemptStatusExpired   = "expired"
)

// VNPayResponseMessages map vnp_ResponseCode → mô tả (theo tài liệu VNPay)
var VNPayResponseMessages = map[string]string{
	"00": "Giao dịch thành công",
	"07": "Trừ tiền thành công, giao dịch bị nghi ngờ",
	"09": "Thẻ/Tài khoản chưa đăng ký InternetBanking",
	"10": "Xác thực thông tin thẻ/tài khoản không đúng quá 3 lần",
	"11": "Đã hết hạn chờ thanh toán",
	"12": "Thẻ/Tài khoản bị khóa",
	"13": "Nhập sai mật khẩu xác thực giao dịch (OTP)",
	"24": "Khách hàng hủy giao dịch",
	"51": "Tài khoản không đủ số dư",
	"65": "Tài khoản đã vượt quá hạn mức giao dịch trong ngày",
	"75": "Ngân hàng thanh toán đang bảo trì",
	"79": "Nhập sai mật khẩu thanh toán quá số lần quy định",
	"99": "Lỗi khác",
}
