package conversation

import "regexp"

var linkPattern = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)

// RenderLinks は [label](url) 形式のリンク記法を <a> タグに変換します。
func RenderLinks(text string) string {
	return linkPattern.ReplaceAllString(text, `<a href="${2}" target="_blank">${1}</a>`)
}
