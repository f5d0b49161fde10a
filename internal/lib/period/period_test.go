package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "middle of month",
			in:   time.Date(2025, 3, 17, 14, 30, 45, 12, time.UTC),
			want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "first day of month",
			in:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-utc location normalized to utc",
			in:   time.Date(2025, 1, 1, 2, 0, 0, 0, time.FixedZone("MSK", 3*3600)),
			want: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthOf(tt.in))
		})
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Next(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Next(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}
