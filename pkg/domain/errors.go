package domain

import "errors"

// アプリケーション共通のセンチネルエラーです。
// 呼び出し側は errors.Is で判定します。
var (
	// ErrNotConfigured は生成機能が使えない状態 (APIキー未設定など) を表します。
	ErrNotConfigured = errors.New("generation capability is not configured")
	// ErrDecode は画像ペイロードが解釈できないことを表します。
	ErrDecode = errors.New("malformed image payload")
	// ErrEmptyResult は生成は成功したが画像が0件だったことを表します。
	ErrEmptyResult = errors.New("generation returned no images")
	// ErrService は外部の生成サービスが失敗したことを表します。
	ErrService = errors.New("generation service failed")
	// ErrPackaging はアーカイブの圧縮に失敗したことを表します。
	ErrPackaging = errors.New("archive packaging failed")

	ErrEmptyPrompt      = errors.New("prompt is empty")
	ErrNoStagedImage    = errors.New("no staged image")
	ErrUnknownStyle     = errors.New("unknown style")
	ErrUnknownAction    = errors.New("unknown quick action")
	ErrNotFound         = errors.New("record not found")
	ErrEmptyGallery     = errors.New("gallery is empty")
	ErrExportInProgress = errors.New("export already in progress")
)
