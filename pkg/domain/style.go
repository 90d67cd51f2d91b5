package domain

import "strings"

// Style は画像生成のスタイルチップです。
type Style struct {
	ID          string
	Name        string // チップ表示名
	Prefix      string // プロンプトの先頭に付与する文字列
	DisplayName string // ギャラリーカードに表示する名前
}

// Compose はスタイルのプレフィックスとベースプロンプトを結合します。
func (s Style) Compose(basePrompt string) string {
	return s.Prefix + basePrompt
}

// Styles は利用可能なスタイルの一覧です。
var Styles = []Style{
	{ID: "realistic", Name: "📷 Realistic", Prefix: "realistic photo of ", DisplayName: "Realistic Photo"},
	{ID: "cartoon", Name: "✏️ Cartoon", Prefix: "old skool cartoon style drawing of ", DisplayName: "Old Skool Cartoon"},
	{ID: "hyper", Name: "✨ Hyper", Prefix: "hyper realistic detailed image of ", DisplayName: "Hyper Realistic"},
	{ID: "pixel", Name: "👾 Pixel Art", Prefix: "pixel art style image of ", DisplayName: "Pixel Art"},
	{ID: "abstract", Name: "🎨 Abstract", Prefix: "abstract artistic interpretation of ", DisplayName: "Abstract Art"},
	{ID: "tattoo", Name: "💪 Tattoo", Prefix: "Tattoo artistic interpretation of ", DisplayName: "Tattoo"},
	{ID: "sand", Name: "⛱️ Sand", Prefix: "Sand art interpretation of ", DisplayName: "Sand"},
	{ID: "fire", Name: "🔥 Fire", Prefix: "Fire interpretation of ", DisplayName: "Fire"},
	{ID: "water", Name: "💧 Water", Prefix: "Water interpretation of ", DisplayName: "Water"},
	{ID: "fur", Name: "🦧 Fur", Prefix: "Fur interpretation of ", DisplayName: "Fur"},
}

// FindStyle は ID からスタイルを探します。大文字小文字は区別しません。
func FindStyle(id string) (Style, bool) {
	for _, s := range Styles {
		if strings.EqualFold(s.ID, id) {
			return s, true
		}
	}
	return Style{}, false
}

// QuickAction は画像添付中にだけ使える定型プロンプトです。
type QuickAction struct {
	ID     string
	Label  string
	Prompt string
}

// QuickActions は定型アクションの一覧です。
var QuickActions = []QuickAction{
	{ID: "describe", Label: "🖼️ Describe", Prompt: "Describe this image in detail."},
	{ID: "explain", Label: "🤔 Explain", Prompt: "Explain what is happening in this image."},
	{ID: "summarize", Label: "📝 Summarize", Prompt: "Summarize this image concisely."},
	{ID: "questions", Label: "❓ Questions", Prompt: "Suggest three interesting questions I could ask about this image."},
	{ID: "ideas", Label: "💡 Ideas", Prompt: "Generate creative ideas based on this image."},
}

// FindQuickAction は ID から定型アクションを探します。
func FindQuickAction(id string) (QuickAction, bool) {
	for _, a := range QuickActions {
		if strings.EqualFold(a.ID, id) {
			return a, true
		}
	}
	return QuickAction{}, false
}
