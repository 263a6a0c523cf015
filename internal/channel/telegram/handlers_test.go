package telegram

import (
	"strings"
	"testing"

	"github.com/rshoplabs/shopbot/internal/pending"
)

func TestFileExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://api.telegram.org/file/bot123/photos/file_1.jpg", ".jpg"},
		{"https://api.telegram.org/file/bot123/photos/file_2.png", ".png"},
		{"https://api.telegram.org/file/bot123/photos/file_3", ".jpg"},
		{"://bad", ".jpg"},
	}
	for _, tt := range tests {
		if got := fileExt(tt.url); got != tt.want {
			t.Errorf("fileExt(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestLimitMessage(t *testing.T) {
	t.Parallel()

	if got := limitMessage(pending.ErrCategoryImageLimit); !strings.Contains(got, "one image") {
		t.Fatalf("category message = %q", got)
	}
	if got := limitMessage(pending.ErrProductImageLimit); !strings.Contains(got, "/clearimages") {
		t.Fatalf("product message = %q", got)
	}
}
