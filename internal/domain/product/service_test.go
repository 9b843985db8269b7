// internal/domain/product/service_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lavanda & Vainilla", "lavanda-y-vainilla"},
		{"Bosque de Cedro", "bosque-de-cedro"},
		{"Jazmín Blanco", "jazmin-blanco"},
		{"  Canela & Naranja  ", "canela-y-naranja"},
		{"Eucalipto---Menta", "eucalipto-menta"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}

func TestPackSavings(t *testing.T) {
	pack := &Pack{Price: 185000, OriginalPrice: 220000}
	assert.Equal(t, int64(35000), pack.Savings())

	// A pack priced at or above its components saves nothing
	pack = &Pack{Price: 220000, OriginalPrice: 220000}
	assert.Equal(t, int64(0), pack.Savings())

	pack = &Pack{Price: 250000, OriginalPrice: 220000}
	assert.Equal(t, int64(0), pack.Savings())
}
