// Package main provides localization for the heatgrid CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Render month-by-year heatmaps from exported datasets.": "エクスポートされたデータセットから月×年ヒートマップを描画",

		// Global flags
		"Path to a YAML configuration file.":                     "YAML設定ファイルのパス",
		"Directory containing dataset JSON files.":               "データセットJSONファイルのディレクトリ",
		"Metric to render (births, daily_fertility_rate, ...).": "描画する指標（births, daily_fertility_rate など）",
		"Log level (debug, info, warn, error).":                  "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                               "全てのログ出力を抑制",

		// Render command
		"Render one entity's heatmap as a PNG file.":          "1エンティティのヒートマップをPNGとして描画",
		"Output PNG file path.":                               "出力PNGファイルパス",
		"Also write a quarter-size preview PNG at this path.": "このパスに4分の1サイズのプレビューPNGも出力",

		// Compare command
		"Render several entities stacked for comparison.": "複数エンティティを縦に並べて比較描画",
		"Color scale mode (unified or per-entity).":       "カラースケールモード（unified または per-entity）",
		"compare needs at least two entities":             "compare には少なくとも2つのエンティティが必要です",

		// Export command
		"Export one entity's heatmap as an interactive HTML chart.": "1エンティティのヒートマップをインタラクティブHTMLチャートとして出力",
		"Output HTML file path.":                                    "出力HTMLファイルパス",
		"Also capture the chart as a PNG at this path.":             "チャートをこのパスにPNGとしても取得",

		// Zones command
		"Print the data-availability zones for one entity.": "1エンティティのデータ有無ゾーンを表示",
		"data":    "データあり",
		"no data": "データなし",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"heatgrid version %s":       "heatgrid バージョン %s",

		// Window flags
		"First year of the window (default: full span).": "ウィンドウの開始年（デフォルト: 全期間）",
		"Last year of the window (default: full span).":  "ウィンドウの終了年（デフォルト: 全期間）",

		// Errors and runtime messages
		"exactly one entity is required": "エンティティをちょうど1つ指定してください",
		"Interrupted, shutting down...":  "中断されました。シャットダウン中...",
	})
}
