// Package presenter maps backend responses to what the user sees.
package presenter

import (
	"fmt"
	"math"

	"github.com/studiowebux/lifeweeks/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// PreviewView is the display form of the latest successful preview
type PreviewView struct {
	Image     []byte // decoded PNG
	Title     string
	Subtitle  string
	Elapsed   string
	Remaining string
	Percent   string
	Total     int
}

// ComputePercent returns round(elapsed/total*100), or 0 when total is 0
func ComputePercent(elapsed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(elapsed)/float64(total)*100 + 0.5))
}

// FormatCount formats n with thousands separators ("1,000")
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Present converts a preview response into its display form.
// The elapsed + remaining == total relation is not checked here.
func Present(resp *types.PreviewResponse) (PreviewView, error) {
	img, err := resp.ImageData()
	if err != nil {
		return PreviewView{}, err
	}
	return PreviewView{
		Image:     img,
		Title:     resp.Title,
		Subtitle:  resp.Subtitle,
		Elapsed:   FormatCount(resp.ElapsedWeeks),
		Remaining: FormatCount(resp.RemainingWeeks),
		Percent:   fmt.Sprintf("%d%%", ComputePercent(resp.ElapsedWeeks, resp.TotalWeeks)),
		Total:     resp.TotalWeeks,
	}, nil
}

// Summary renders a one-line text summary of a preview
func (v PreviewView) Summary() string {
	return fmt.Sprintf("%s: %s elapsed, %s remaining (%s)", v.Title, v.Elapsed, v.Remaining, v.Percent)
}
