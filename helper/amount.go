package helper

import (
	"errors"
	"fmt"
)

const (
	ProviderVNPay = "vnpay"
	ProviderCard  = "card"

	// Giới hạn số tiền một đơn hàng (VND)
	MinAmountVnd = 1_000
	MaxAmountVnd = 10_000_000
)

var ErrInvalidAmount = errors.New("số tiền không hợp lệ")

// ToProviderUnits đổi số tiền VND chuẩn sang đơn vị wire của từng cổng.
// VNPay luôn nhân 100 bất kể currency; intent API coi VND là smallest unit
// nên giữ nguyên. Mọi chỗ cần scale tiền đều phải đi qua đây, không tự nhân.
func ToProviderUnits(amountVnd int64, provider string) (int64, error) {
	if amountVnd < MinAmountVnd || amountVnd > MaxAmountVnd {
		return 0, ErrInvalidAmount
	}
	switch provider {
	case ProviderVNPay:
		return amountVnd * 100, nil
	case ProviderCard:
		return amountVnd, nil
	}
	return 0, fmt.Errorf("provider không hỗ trợ: %s", provider)
}

// FromProviderUnits đổi ngược số tiền wire về VND chuẩn
func FromProviderUnits(raw int64, provider string) (int64, error) {
	switch provider {
	case ProviderVNPay:
		if raw%100 != 0 {
			return 0, ErrInvalidAmount
		}
		return raw / 100, nil
	case ProviderCard:
		return raw, nil
	}
	return 0, fmt.Errorf("provider không hỗ trợ: %s", provider)
}
