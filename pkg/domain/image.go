package domain

// DirectPromptLabel は、スタイルを指定せずに生成した画像に付けるラベルです。
const DirectPromptLabel = "Direct Prompt"

// ImageRecord はギャラリーに保存される生成画像の1件分です。
// 作成後は変更しません。
type ImageRecord struct {
	ID          int64  // 挿入順に単調増加する時刻ベースの ID
	ImageURL    string // data URL 形式の画像
	PromptFull  string // 生成APIに送ったプロンプト全文
	PromptBase  string // ユーザーが入力した部分
	ModelName   string
	GeneratedAt string // 表示用の時刻 (HH:MM)
	StyleLabel  string
}

// GeneratedImage は生成APIから返された画像データです。
type GeneratedImage struct {
	Data     []byte
	MimeType string
}

// StagedImage は次のチャットに添付される画像です。
type StagedImage struct {
	DataURL  string
	MimeType string
}
