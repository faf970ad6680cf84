package presenter

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/studiowebux/lifeweeks/internal/types"
)

func TestComputePercent(t *testing.T) {
	tests := []struct {
		elapsed, total, want int
	}{
		{0, 0, 0},
		{10, 0, 0},
		{1300, 4160, 31},
		{1000, 4160, 24},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds up
		{4160, 4160, 100},
	}
	for _, tt := range tests {
		if got := ComputePercent(tt.elapsed, tt.total); got != tt.want {
			t.Errorf("ComputePercent(%d, %d) = %d, want %d", tt.elapsed, tt.total, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		3160:    "3,160",
		1234567: "1,234,567",
	}
	for n, want := range tests {
		if got := FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestPresent_Stats(t *testing.T) {
	resp := &types.PreviewResponse{
		Title:          "Your Life in Weeks",
		Subtitle:       "1000 weeks lived",
		ElapsedWeeks:   1000,
		RemainingWeeks: 3160,
		TotalWeeks:     4160,
		ImageBase64:    base64.StdEncoding.EncodeToString(testPNG(t, 4, 4)),
	}

	view, err := Present(resp)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if view.Elapsed != "1,000" || view.Remaining != "3,160" || view.Percent != "24%" {
		t.Errorf("stats = %s / %s / %s, want 1,000 / 3,160 / 24%%", view.Elapsed, view.Remaining, view.Percent)
	}
	if view.Title != resp.Title || view.Subtitle != resp.Subtitle {
		t.Errorf("title/subtitle not copied: %+v", view)
	}
	if len(view.Image) == 0 {
		t.Error("expected decoded image bytes")
	}
	if !strings.Contains(view.Summary(), "24%") {
		t.Errorf("summary = %q", view.Summary())
	}
}

func TestPresent_BadImage(t *testing.T) {
	_, err := Present(&types.PreviewResponse{ImageBase64: "not base64!"})
	if err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestNotifier_ReplaceAndDismiss(t *testing.T) {
	n := NewNotifier(0)
	if n.Timeout() != DefaultNotificationTimeout {
		t.Errorf("timeout = %v, want default", n.Timeout())
	}

	first := n.Show(KindSuccess, "Preview generated")
	second := n.Show(KindError, "Failed")

	cur, ok := n.Current()
	if !ok || cur.ID != second.ID || cur.Text != "Failed" {
		t.Fatalf("current = %+v, want second notification", cur)
	}

	// the first notification's timer fires after being replaced
	if n.Dismiss(first.ID) {
		t.Error("stale dismissal should be ignored")
	}
	if _, ok := n.Current(); !ok {
		t.Error("second notification should still be visible")
	}

	if !n.Dismiss(second.ID) {
		t.Error("dismissing the current notification should succeed")
	}
	if _, ok := n.Current(); ok {
		t.Error("no notification should be visible")
	}
}

func TestThumbnail_FitsBounds(t *testing.T) {
	out, err := Thumbnail(testPNG(t, 160, 90), 40, 10)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) > 10 {
		t.Errorf("thumbnail has %d rows, max 10", len(lines))
	}
	if !strings.Contains(out, "▀") {
		t.Error("expected half-block characters")
	}
}

func TestThumbnail_InvalidPNG(t *testing.T) {
	if _, err := Thumbnail([]byte("nope"), 10, 10); err == nil {
		t.Error("expected decode error")
	}
}

func TestFitSize(t *testing.T) {
	w, h := fitSize(1920, 1080, 40, 20)
	if w > 40 || h > 20 {
		t.Errorf("fitSize = %dx%d exceeds 40x20", w, h)
	}
	if w, h := fitSize(0, 10, 5, 5); w != 0 || h != 0 {
		t.Errorf("fitSize of empty image = %dx%d", w, h)
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}
