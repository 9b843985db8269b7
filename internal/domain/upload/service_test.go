// internal/domain/upload/service_test.go
package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

func testService() *Service {
	cfg := &config.Config{}
	cfg.External.Storage.Endpoint = "localhost:9000"
	cfg.External.Storage.Bucket = "kimezu-media"
	cfg.External.Storage.ProofFolder = "payment-proofs"
	cfg.External.Storage.ProductFolder = "products"
	cfg.Upload.MaxSize = 10485760
	cfg.Upload.AllowedExtensions = []string{"jpg", "jpeg", "png", "webp"}
	return NewService(nil, cfg)
}

func TestPublicURLFromEndpoint(t *testing.T) {
	s := testService()

	url := s.PublicURL("payment-proofs/abc.jpg")
	assert.Equal(t, "http://localhost:9000/kimezu-media/payment-proofs/abc.jpg", url)
}

func TestPublicURLPrefersBaseURL(t *testing.T) {
	s := testService()
	s.config.External.Storage.PublicBaseURL = "https://media.kimezu.co/"

	url := s.PublicURL("products/abc.webp")
	assert.Equal(t, "https://media.kimezu.co/kimezu-media/products/abc.webp", url)
}

func TestAllowedExtension(t *testing.T) {
	s := testService()

	assert.True(t, s.allowedExtension("jpg"))
	assert.True(t, s.allowedExtension("webp"))
	assert.False(t, s.allowedExtension("pdf"))
	assert.False(t, s.allowedExtension(""))
}

func TestFolderByKind(t *testing.T) {
	s := testService()

	assert.Equal(t, "payment-proofs", s.folder(KindPaymentProof))
	assert.Equal(t, "products", s.folder(KindProductImage))
}
