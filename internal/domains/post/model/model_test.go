package model_test

import (
	"testing"

	"oec/internal/domains/post/model"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"New Dormitory Block Opens":        "new-dormitory-block-opens",
		"  Hall A & B: 2025 prices!  ":     "hall-a-b-2025-prices",
		"Finfinnee -- training --- center": "finfinnee-training-center",
		"!!!":                              "",
	}

	for title, want := range tests {
		assert.Equal(t, want, model.Slugify(title), title)
	}
}
