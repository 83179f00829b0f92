package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestrator
		"Heatmap saved to %s":                             "ヒートマップを %s に保存しました",
		"Thumbnail saved to %s":                           "サムネイルを %s に保存しました",
		"Comparison saved to %s (%d entities, %d-%d)":     "比較画像を %s に保存しました（%d エンティティ, %d-%d）",
		"Chart saved to %s":                               "チャートを %s に保存しました",
		"Snapshot saved to %s":                            "スナップショットを %s に保存しました",
		"Mounted %d grids for years %d-%d":                "%d 個のグリッドをマウントしました（%d-%d 年）",
		"Entity %s could not be loaded, skipping":         "エンティティ %s を読み込めなかったためスキップします",
		"discarding stale load result for %s":             "%s の古い読み込み結果を破棄します",
		"discarding stale load result for %d entities":    "%d エンティティの古い読み込み結果を破棄します",

		// Loader
		"Reading %s":                   "%s を読み込み中",
		"Entity %s failed to load: %v": "エンティティ %s の読み込みに失敗: %v",

		// Grid
		"grid rebuilt for %s: %d years, %d cells": "%s のグリッドを再構築: %d 年, %d セル",
		"rendering no-data placeholder for %s":    "%s のデータなしプレースホルダを描画",
		"grid destroyed for %s":                   "%s のグリッドを破棄しました",
		"invalid color scale for %s: %v":          "%s のカラースケールが不正です: %v",

		// Snapshot
		"Snapshot captured: %d bytes": "スナップショットを取得: %d バイト",
	})
}
