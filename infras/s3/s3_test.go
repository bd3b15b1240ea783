package s3_test

import (
	"context"
	"oec/config"
	"oec/infras/otel/mocks"
	"oec/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3_NotConfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "oec"

	client := s3.New(cfg, mocks.NewOtel())

	_, err := client.UploadFileBytes(context.Background(), "", "proofs", "proof.png", "image/png", []byte("png"))

	assert.ErrorIs(t, err, s3.ErrNotConfigured)
	assert.ErrorContains(t, err, "EXTERNAL_S3_ACCESS_KEY_ID")
	assert.NotContains(t, err.Error(), "EXTERNAL_S3_BUCKET_NAME")

	assert.ErrorIs(t, client.DeleteFile(context.Background(), "", "proofs", "proof.png"), s3.ErrNotConfigured)
}

func TestS3_GetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "oec"
	cfg.External.S3.PublicDomain = "https://media.oec.et"
	cfg.External.S3.APIEndpoint = "https://account.r2.example.com"

	client := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://media.oec.et/facilities/hall.png", want: "facilities/hall.png"},
		{name: "public domain with bucket", url: "https://media.oec.et/oec/proofs/p.pdf", want: "proofs/p.pdf"},
		{name: "api endpoint", url: "https://account.r2.example.com/oec/assets/logo.png", want: "assets/logo.png"},
		{name: "foreign host", url: "https://elsewhere.example.com/logo.png", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.GetObjectNameFromURL("", tt.url))
		})
	}
}
