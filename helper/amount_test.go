package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToProviderUnitsVNPayScalesBy100(t *testing.T) {
	got, err := ToProviderUnits(150_000, ProviderVNPay)
	assert.NoError(t, err)
	assert.Equal(t, int64(15_000_000), got)
}

func TestToProviderUnitsCardIsIdentity(t *testing.T) {
	got, err := ToProviderUnits(150_000, ProviderCard)
	assert.NoError(t, err)
	assert.Equal(t, int64(150_000), got)
}

func TestAmountRoundTrip(t *testing.T) {
	amounts := []int64{1_000, 1_001, 45_000, 150_000, 999_999, 10_000_000}
	for _, a := range amounts {
		for _, provider := range []string{ProviderVNPay, ProviderCard} {
			encoded, err := ToProviderUnits(a, provider)
			assert.NoError(t, err)
			decoded, err := FromProviderUnits(encoded, provider)
			assert.NoError(t, err)
			assert.Equal(t, a, decoded, "round-trip %d qua %s", a, provider)
		}
	}
}

func TestToProviderUnitsRejectsOutOfRange(t *testing.T) {
	cases := []int64{0, -1, 999, 10_000_001}
	for _, a := range cases {
		_, err := ToProviderUnits(a, ProviderVNPay)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", a)
		_, err = ToProviderUnits(a, ProviderCard)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", a)
	}
}

func TestFromProviderUnitsVNPayRejectsNonMultipleOf100(t *testing.T) {
	_, err := FromProviderUnits(15_000_050, ProviderVNPay)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUnknownProviderRejected(t *testing.T) {
	_, err := ToProviderUnits(50_000, "paypal")
	assert.Error(t, err)
	_, err = FromProviderUnits(50_000, "paypal")
	assert.Error(t, err)
}
