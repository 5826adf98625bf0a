package heatmap

import (
	"fmt"
	"html"
	"strings"
	"time"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// GenerateYearlyHeatmapSVG は週を列、曜日を行とするヒートマップのSVGを返します。
// data は日付の昇順で並んでいる必要があります。data が空の場合は空文字列を返します。
func GenerateYearlyHeatmapSVG(data []Data, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(data) == 0 {
		return ""
	}

	startDate := truncateDay(data[0].Date)
	endDate := truncateDay(data[len(data)-1].Date)

	countMap := make(map[string]int, len(data))
	maxCount := 0
	for _, d := range data {
		countMap[dayKey(d.Date)] = d.Count
		maxCount = max(maxCount, d.Count)
	}

	// 最初の列を日曜日にそろえる
	firstSunday := startDate.AddDate(0, 0, -int(startDate.Weekday()))
	weeks := int(endDate.Sub(firstSunday).Hours()/24)/7 + 1

	titleHeight := 0
	if opts.Title != "" {
		titleHeight = opts.FontSize + 8
	}
	gridTop := opts.CellPadding + opts.FontSize + 4 + titleHeight
	width := weeks*(opts.CellSize+opts.CellPadding) + opts.CellPadding
	height := gridTop + 7*(opts.CellSize+opts.CellPadding)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`+"\n", width, height)
	fmt.Fprintf(&sb, `  <style>.label{font-family:%s;font-size:%dpx;fill:#666}.title{font-family:%s;font-size:%dpx;fill:#333;font-weight:bold}</style>`+"\n",
		opts.FontFamily, opts.FontSize, opts.FontFamily, opts.FontSize)

	if opts.Title != "" {
		fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="title">%s</text>`+"\n",
			opts.CellPadding, opts.FontSize, html.EscapeString(opts.Title))
	}

	// 月の最初の週に月ラベルを置く
	lastMonth := time.Month(0)
	for w := range weeks {
		weekStart := firstSunday.AddDate(0, 0, w*7)
		if weekStart.Day() <= 7 && weekStart.Month() != lastMonth {
			x := opts.CellPadding + w*(opts.CellSize+opts.CellPadding)
			fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="label">%s</text>`+"\n",
				x, opts.FontSize+titleHeight, monthLabels[weekStart.Month()-1])
			lastMonth = weekStart.Month()
		}
	}

	for w := range weeks {
		for i := range 7 {
			current := firstSunday.AddDate(0, 0, w*7+i)
			key := dayKey(current)
			count, ok := countMap[key]
			if !ok {
				// 範囲外の日は描画しない
				continue
			}
			x := opts.CellPadding + w*(opts.CellSize+opts.CellPadding)
			y := gridTop + i*(opts.CellSize+opts.CellPadding)
			color := opts.Colors[level(count, maxCount, len(opts.Colors))]

			fmt.Fprintf(&sb, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" data-date="%s" data-count="%d">`+"\n",
				x, y, opts.CellSize, opts.CellSize, color, key, count)
			fmt.Fprintf(&sb, `    <title>%s: %d %s</title>`+"\n", current.Format("Jan 2, 2006"), count, plural(count, "change", "changes"))
			sb.WriteString(`  </rect>` + "\n")
		}
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

// level は件数を色のレベルに変換します。0件は常にレベル0で、
// 1件以上は最大件数に対する比で 1..levels-1 に割り当てます。
func level(count, maxCount, levels int) int {
	if count <= 0 || levels < 2 {
		return 0
	}
	// 件数が少ないうちに最上位の色にならないよう、分母は最低でも5とする
	sup := max(maxCount, 5)
	l := (count-1)*(levels-1)/sup + 1
	return min(l, levels-1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
