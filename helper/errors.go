package helper

import "errors"

// Phân loại lỗi settlement. Các lỗi này là outcome trả về cho caller để
// redirect/hiển thị, không phải panic; duy nhất ErrTransientNetwork được
// retry cục bộ.
var (
	ErrInvalidSignature = errors.New("chữ ký không hợp lệ")
	ErrOrderNotFound    = errors.New("đơn hàng không tồn tại")
	ErrAmountMismatch   = errors.New("số tiền không khớp đơn hàng")
	ErrNotConfigured    = errors.New("cổng thanh toán chưa được cấu hình")
	ErrProviderRejected = errors.New("cổng thanh toán từ chối giao dịch")
	ErrTransientNetwork = errors.New("lỗi mạng tạm thời")
)
