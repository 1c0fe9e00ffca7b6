package cv

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestResolveImage(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}

	cases := []struct {
		name      string
		src       ImageSource
		want      string
		wantError bool
	}{
		{
			name: "absent",
			src:  ImageSource{},
			want: DefaultProfileImage,
		},
		{
			name: "path unchanged",
			src:  ImagePath("/images/me.png"),
			want: "/images/me.png",
		},
		{
			name: "url unchanged",
			src:  ImagePath("https://cdn.example.com/me.jpg"),
			want: "https://cdn.example.com/me.jpg",
		},
		{
			name: "bytes inlined",
			src:  ImageBytes(jpeg),
			want: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg),
		},
		{
			name:      "empty bytes",
			src:       ImageBytes([]byte{}),
			wantError: true,
		},
		{
			name:      "nil bytes",
			src:       ImageBytes(nil),
			wantError: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveImage(tc.src)
			if tc.wantError {
				if !errors.Is(err, ErrEmptyAsset) {
					t.Fatalf("Expected ErrEmptyAsset, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ResolveImage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveImageDataURIPrefix(t *testing.T) {
	got, err := ResolveImage(ImageBytes([]byte("not really a jpeg")))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("Expected data URI, got %q", got)
	}
}

func TestImageReader(t *testing.T) {
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}

	src, err := ImageReader(bytes.NewReader(jpeg))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := ResolveImage(src)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(jpeg) {
		t.Errorf("ResolveImage() = %q", got)
	}

	empty, err := ImageReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if empty.IsZero() {
		t.Error("An empty stream is still a byte source")
	}
	_, err = ResolveImage(empty)
	if !errors.Is(err, ErrEmptyAsset) {
		t.Errorf("Expected ErrEmptyAsset, got %v", err)
	}

	_, err = ImageReader(iotest.ErrReader(errors.New("disk gone")))
	if err == nil {
		t.Error("Expected read error")
	}
}
