package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Laptop", "laptop"},
		{"Laptop Gaming", "laptop-gaming"},
		{"Màn hình máy tính", "man-hinh-may-tinh"},
		{"Điện thoại & Phụ kiện", "dien-thoai-phu-kien"},
		{"  Ổ cứng SSD 1TB  ", "o-cung-ssd-1tb"},
		{"already-a-slug", "already-a-slug"},
		{"--Tai nghe--", "tai-nghe"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Truncates(t *testing.T) {
	got := Slugify(strings.Repeat("ab ", 100))
	assert.LessOrEqual(t, len(got), maxSlugLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}
