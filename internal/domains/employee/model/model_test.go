package model_test

import (
	"testing"
	"time"

	"oec/internal/domains/employee/model"

	"github.com/stretchr/testify/assert"
)

func TestNextType(t *testing.T) {
	tests := []struct {
		name string
		last *model.Attendance
		want string
	}{
		{name: "first scan of the day", last: nil, want: model.TypeCheckIn},
		{name: "after check in", last: &model.Attendance{Type: model.TypeCheckIn}, want: model.TypeCheckOut},
		{name: "after check out", last: &model.Attendance{Type: model.TypeCheckOut}, want: model.TypeCheckIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.NextType(tt.last))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	scanned := time.Date(2025, 3, 14, 23, 59, 58, 0, loc)

	start := model.StartOfDay(scanned)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}
