package studio

import "strings"

const (
	chatErrKeyInvalid = "⚠️ API key is not valid. Please check your configuration."
	chatErrQuota      = "⚠️ You have exceeded your API quota for text generation."
	chatErrGeneric    = "⚠️ An error occurred while trying to get a response. Please check the console."
)

// ClassifyChatError はチャットの失敗をユーザー向けの文言に変換します。
// プロバイダのエラーメッセージに対する部分一致で判定する簡易的なものです。
// 最初に一致した規則を採用し、どれにも一致しなければ汎用の文言になります。
func ClassifyChatError(err error) string {
	if err == nil {
		return chatErrGeneric
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"):
		return chatErrKeyInvalid
	case strings.Contains(msg, "quota"):
		return chatErrQuota
	default:
		return chatErrGeneric
	}
}
