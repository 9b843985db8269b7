// internal/domain/order/entity_test.go
package order

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentCard))
	assert.True(t, ValidPaymentMethod(PaymentNequi))
	assert.True(t, ValidPaymentMethod(PaymentBancolombia))
	assert.False(t, ValidPaymentMethod("paypal"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestGenerateOrderNumber(t *testing.T) {
	format := regexp.MustCompile(`^KMZ-[A-F0-9]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := generateOrderNumber()
		assert.Regexp(t, format, n)
		assert.False(t, seen[n], "order numbers must not repeat")
		seen[n] = true
	}
}
