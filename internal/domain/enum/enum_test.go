package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	for _, valid := range []string{"pending", "paid", "overdue", "cancelled"} {
		status, err := ParsePaymentStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParsePaymentStatus("refunded")
	assert.Error(t, err)

	_, err = ParsePaymentStatus("")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"cash", "card", "transfer", "wallet"} {
		method, err := ParsePaymentMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, method.String())
	}

	_, err := ParsePaymentMethod("check")
	assert.Error(t, err)
}

func TestParseWalletTypeAllowsEmpty(t *testing.T) {
	wallet, err := ParseWalletType("")
	require.NoError(t, err)
	assert.Equal(t, WalletTypeNone, wallet)

	wallet, err = ParseWalletType("mercadopago")
	require.NoError(t, err)
	assert.Equal(t, WalletTypeMercadoPago, wallet)

	_, err = ParseWalletType("paypal")
	assert.Error(t, err)
}

func TestParseSaleStatus(t *testing.T) {
	for _, valid := range []string{"draft", "confirmed", "delivered", "cancelled"} {
		_, err := ParseSaleStatus(valid)
		require.NoError(t, err)
	}

	_, err := ParseSaleStatus("returned")
	assert.Error(t, err)
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("admin")
	require.NoError(t, err)
	assert.Equal(t, UserRoleAdmin, role)

	_, err = ParseUserRole("superadmin")
	assert.Error(t, err)
}

func TestParseCustomerType(t *testing.T) {
	ct, err := ParseCustomerType("business")
	require.NoError(t, err)
	assert.Equal(t, CustomerTypeBusiness, ct)

	_, err = ParseCustomerType("wholesale")
	assert.Error(t, err)
}
