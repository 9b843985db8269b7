// internal/pkg/currency/currency_test.go
package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{5, "$5"},
		{999, "$999"},
		{1000, "$1.000"},
		{12000, "$12.000"},
		{85000, "$85.000"},
		{100000, "$100.000"},
		{295000, "$295.000"},
		{1000000, "$1.000.000"},
		{1234567890, "$1.234.567.890"},
		{-18000, "-$18.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount), "Format(%d)", tt.amount)
	}
}
