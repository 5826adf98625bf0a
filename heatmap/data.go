// Package heatmap はプロジェクトの活動量をGitHub風のヒートマップSVGとして描画します。
package heatmap

import (
	"time"
)

// Data は1日分の件数です。
type Data struct {
	Date  time.Time
	Count int
}

// Options は描画パラメータです。
type Options struct {
	CellSize    int      // 1日分のセルの大きさ (px)
	CellPadding int      // セル間の余白 (px)
	Colors      []string // レベル 0..N-1 に対応する N 色
	FontSize    int      // ラベルのフォントサイズ (px)
	FontFamily  string   // ラベルのフォント
	Title       string   // 上部に表示するタイトル。空なら表示しない
}

// DefaultOptions は既定の描画パラメータを返します。
func DefaultOptions() *Options {
	return &Options{
		CellSize:    12,
		CellPadding: 2,
		FontSize:    10,
		FontFamily:  "sans-serif",
		Colors:      []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"},
	}
}

// Series は from から to までのすべての日を含む昇順の系列を作ります。
// points に無い日の件数は0です。日付はUTCの暦日で扱います。
func Series(from, to time.Time, points []Data) []Data {
	counts := make(map[string]int, len(points))
	for _, p := range points {
		counts[dayKey(p.Date)] += p.Count
	}

	start := truncateDay(from)
	end := truncateDay(to)
	var data []Data
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		data = append(data, Data{Date: d, Count: counts[dayKey(d)]})
	}
	return data
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
