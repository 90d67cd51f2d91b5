package archive

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/utils"
)

const (
	// ManifestName はカード情報の HTML のファイル名です。
	ManifestName = "card_info.html"
	// snippetLength はファイル名に使うプロンプトの最大文字数です。
	snippetLength = 20
)

var (
	unsafeChars     = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`__+`)
	isoTimeReplacer = strings.NewReplacer(":", "-", ".", "-")
)

// singleSafe は単体エクスポート用の置換です。連続する _ はまとめません。
func singleSafe(s string) string {
	return strings.ToLower(unsafeChars.ReplaceAllString(s, "_"))
}

// bulkSnippet は一括エクスポートのフォルダ名用です。連続する _ を1つにまとめます。
func bulkSnippet(prompt string) string {
	s := unsafeChars.ReplaceAllString(utils.TruncateRunes(prompt, snippetLength), "_")
	return underscoreRuns.ReplaceAllString(s, "_")
}

// SingleFilename は単体エクスポートのアーカイブ名を返します。
func SingleFilename(rec domain.ImageRecord) string {
	style := singleSafe(rec.StyleLabel)
	prompt := singleSafe(utils.TruncateRunes(rec.PromptBase, snippetLength))
	return fmt.Sprintf("card_%s_%s_%d.zip", style, prompt, rec.ID)
}

// FolderName は一括エクスポート内のレコードごとのフォルダ名を返します。
func FolderName(rec domain.ImageRecord) string {
	return fmt.Sprintf("card_%d_%s", rec.ID, bulkSnippet(rec.PromptBase))
}

// BulkFilename は一括エクスポートのアーカイブ名を返します。
func BulkFilename(at time.Time) string {
	iso := at.UTC().Format("2006-01-02T15:04:05.000Z")
	return "gallery_export_all_" + isoTimeReplacer.Replace(iso) + ".zip"
}

// ImageName は MIME の拡張子からアーカイブ内の画像ファイル名を作ります。
func ImageName(ext string) string {
	return "image." + ext
}
