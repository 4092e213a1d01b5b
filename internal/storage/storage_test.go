package storage

import (
	"strings"
	"testing"

	"github.com/vivla-tech/vivla-guides-sub001/internal/pkg/errors"
)

func TestLimitsValidate(t *testing.T) {
	limits := Limits{
		MaxFileSize:  100,
		AllowedTypes: []string{"image/png", "application/pdf"},
	}

	tests := []struct {
		name    string
		files   []File
		wantErr bool
	}{
		{
			name:  "allowed type under the size cap",
			files: []File{{Name: "a.png", ContentType: "image/png", Data: make([]byte, 50)}},
		},
		{
			name:    "oversized file",
			files:   []File{{Name: "big.png", ContentType: "image/png", Data: make([]byte, 200)}},
			wantErr: true,
		},
		{
			name:    "disallowed type",
			files:   []File{{Name: "x.exe", ContentType: "application/octet-stream", Data: make([]byte, 10)}},
			wantErr: true,
		},
		{
			name: "one bad file fails the whole batch upfront",
			files: []File{
				{Name: "ok.png", ContentType: "image/png", Data: make([]byte, 10)},
				{Name: "bad.gif", ContentType: "image/gif", Data: make([]byte, 10)},
			},
			wantErr: true,
		},
		{
			name:  "empty batch",
			files: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limits.Validate(tt.files)
			if tt.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if err != nil && !errors.IsUpload(err) {
				t.Errorf("expected an upload error, got: %v", err)
			}
		})
	}
}

func TestLimitsValidateReportsEveryOffender(t *testing.T) {
	limits := Limits{MaxFileSize: 10, AllowedTypes: []string{"image/png"}}

	err := limits.Validate([]File{
		{Name: "huge.png", ContentType: "image/png", Data: make([]byte, 100)},
		{Name: "wrong.gif", ContentType: "image/gif", Data: make([]byte, 5)},
	})
	if err == nil {
		t.Fatal("expected errors for both files")
	}

	msg := err.Error()
	for _, name := range []string{"huge.png", "wrong.gif"} {
		if !strings.Contains(msg, name) {
			t.Errorf("expected %q mentioned in: %s", name, msg)
		}
	}
}

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	if limits.MaxFileSize != 10<<20 {
		t.Errorf("expected 10 MiB cap, got %d", limits.MaxFileSize)
	}
	if err := limits.Validate([]File{{Name: "a.webp", ContentType: "image/webp", Data: []byte("x")}}); err != nil {
		t.Errorf("expected webp allowed by default, got: %v", err)
	}
}
