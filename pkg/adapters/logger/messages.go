package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Scanning container for image channels": "コンテナの画像チャンネルをスキャン中",
		"Selected channel %s (%d messages)":     "チャンネル %s を選択しました (%d メッセージ)",
		"Estimated %.2f fps from %d frames (%dx%d)": "%.2f fps を %d フレームから推定しました (%dx%d)",
		"Writing %d frames to %s":               "%d フレームを %s に書き込み中",
		"Conversion completed: %d frames":       "変換完了: %d フレーム",
		"Conversion aborted at memory check":    "メモリチェックで変換が中止されました",
		"Interrupted, shutting down...":         "中断されました。シャットダウン中...",

		// Memory check stage
		"Projected decode memory: %s (available memory unknown on this platform)": "推定デコードメモリ: %s (このプラットフォームでは空きメモリが不明です)",
		"Projected memory %s exceeds available %s":                                "推定メモリ %s が空きメモリ %s を超えています",

		// Write stage
		"Failed to save debug frame %d: %s":    "デバッグフレーム %d の保存に失敗しました: %s",
		"Failed to remove partial output %s: %s": "不完全な出力 %s の削除に失敗しました: %s",

		// Errors
		"Failed to scan container: %s":      "コンテナのスキャンに失敗しました: %s",
		"Failed to probe channel: %s":       "チャンネルの走査に失敗しました: %s",
		"Failed to estimate frame rate: %s": "フレームレートの推定に失敗しました: %s",
		"Memory check failed: %s":           "メモリチェックに失敗しました: %s",
		"Failed to write video: %s":         "動画の書き込みに失敗しました: %s",
	})
}
