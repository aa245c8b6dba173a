// Package main provides localization for the mcap2video CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Convert timestamped image records in MCAP logs to video files.": "MCAPログのタイムスタンプ付き画像レコードを動画ファイルに変換します。",

		// Convert command
		"Convert a timestamped image topic to a video file.": "タイムスタンプ付き画像トピックを動画ファイルに変換",

		// Topics command
		"List image topics in an MCAP file.": "MCAPファイル内の画像トピックを一覧表示",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"mcap2video version %s":     "mcap2video バージョン %s",

		// Convert flags
		"Input MCAP file path.": "入力MCAPファイルパス",
		"Image topic to convert. Omit to list available topics.":  "変換する画像トピック（省略時はトピック一覧を表示）",
		"YAML configuration file.":                                "YAML設定ファイル",
		"Output video file path, .mp4 or .avi (default: output.mp4).": "出力動画ファイルパス、.mp4 または .avi（デフォルト: output.mp4）",
		"JPEG quality for encoded frames, 1-100 (default: 90).":       "エンコードフレームのJPEG品質、1-100（デフォルト: 90）",
		"Proceed without prompting when projected memory exceeds available.": "予測メモリが利用可能量を超えても確認なしで続行",
		"Write a Markdown conversion summary to this path.":                  "変換サマリーをMarkdown形式でこのパスに出力",

		// Debug flags
		"Enable debug output.":                       "デバッグ出力を有効化",
		"Directory for debug output (default: ./debug).": "デバッグ出力のディレクトリ（デフォルト: ./debug）",

		// Logging flags
		"Log level: debug, info, warn, error (default: info).": "ログレベル: debug, info, warn, error（デフォルト: info）",
		"Suppress all log output.":                             "全てのログ出力を抑制",

		// Runtime messages
		"Converting %s (topic %s)...":    "%s を変換中 (トピック %s)...",
		"Output saved to %s":             "出力を %s に保存しました",
		"Converted from BGR (bgr8) to RGB":              "BGR (bgr8) から RGB に変換しました",
		"Wrote RGB (rgb8) frames without channel conversion": "RGB (rgb8) フレームをチャネル変換なしで書き出しました",
		"Wrote compressed frames as decoded":            "圧縮フレームをデコード結果のまま書き出しました",
		"Interrupted, shutting down...":  "中断されました。シャットダウン中...",
		"input file not found: %s":       "入力ファイルが見つかりません: %s",
		"No image topics found.":         "画像トピックが見つかりませんでした。",

		// Summary messages
		"Summary saved to %s":          "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
