package heatmap

import (
	"strings"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateYearlyHeatmapSVG_NoFutureDates(t *testing.T) {
	// 2025-01-15は水曜日で、その週の土曜日は2025-01-18
	// 範囲外の日付（2025-01-16, 01-17, 01-18）が含まれないことを確認
	data := Series(day(2025, 1, 1), day(2025, 1, 15), []Data{
		{Date: day(2025, 1, 5), Count: 1},
		{Date: day(2025, 1, 10), Count: 2},
		{Date: day(2025, 1, 15), Count: 3},
	})

	svg := GenerateYearlyHeatmapSVG(data, DefaultOptions())

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatal("Expected SVG to be generated")
	}
	if !strings.Contains(svg, `data-date="2025-01-15" data-count="3"`) {
		t.Error("Expected endDate (2025-01-15) to be included with its count")
	}
	for _, d := range []string{"2025-01-16", "2025-01-17", "2025-01-18", "2024-12-31"} {
		if strings.Contains(svg, `data-date="`+d+`"`) {
			t.Errorf("Date %s outside the range should not be included", d)
		}
	}
}

func TestGenerateYearlyHeatmapSVG_EscapesTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = `<script>alert("x")</script>`

	svg := GenerateYearlyHeatmapSVG(Series(day(2025, 1, 1), day(2025, 1, 2), nil), opts)

	if strings.Contains(svg, "<script>") {
		t.Error("Expected title to be escaped")
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("Expected escaped title to be rendered")
	}
}

func TestGenerateYearlyHeatmapSVG_Empty(t *testing.T) {
	if svg := GenerateYearlyHeatmapSVG(nil, nil); svg != "" {
		t.Errorf("Expected empty string for no data, got %q", svg)
	}
}

func TestSeries(t *testing.T) {
	data := Series(day(2025, 3, 1), day(2025, 3, 3).Add(23*time.Hour), []Data{
		{Date: day(2025, 3, 2), Count: 4},
	})

	if len(data) != 3 {
		t.Fatalf("Expected 3 days, got %d", len(data))
	}
	want := []int{0, 4, 0}
	for i, d := range data {
		if d.Count != want[i] {
			t.Errorf("Day %d: expected count %d, got %d", i, want[i], d.Count)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		description string
		count       int
		max         int
		want        int
	}{
		{"0件は常にレベル0", 0, 10, 0},
		{"1件は最低レベル", 1, 1, 1},
		{"最大件数は最上位", 20, 20, 4},
		{"少数の最大値は最上位にならない", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := level(tt.count, tt.max, 5); got != tt.want {
				t.Errorf("level(%d, %d) = %d, want %d", tt.count, tt.max, got, tt.want)
			}
		})
	}
}
