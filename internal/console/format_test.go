package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{1073741824, "1 GB"},
		{1099511627776, "1 TB"},
		{1234567, "1.18 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.in))
		})
	}
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, "N/A", SuccessRate(0, 0))
	assert.Equal(t, "100%", SuccessRate(4, 4))
	assert.Equal(t, "67%", SuccessRate(2, 3))
	assert.Equal(t, "0%", SuccessRate(0, 7))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Never", FormatDate(nil))
	assert.Equal(t, "Never", FormatDate(&time.Time{}))

	ts := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024", FormatDate(&ts))
}

func TestStatusColor(t *testing.T) {
	tests := map[string]ColorClass{
		"active":     ColorGreen,
		"completed":  ColorGreen,
		"archived":   ColorGray,
		"processing": ColorYellow,
		"running":    ColorBlue,
		"failed":     ColorRed,
		"announced":  ColorPurple,
		"alpha":      ColorOrange,
		"whatever":   ColorUnknown,
		"":           ColorUnknown,
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusColor(status), status)
	}
}
