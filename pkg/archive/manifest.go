package archive

import (
	"bytes"
	"html/template"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
)

var manifestTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Image Card: {{.Record.PromptBase}}</title>
    <style>
        body { font-family: sans-serif; margin: 20px; background-color: #f4f4f4; }
        .card { background-color: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 20px; max-width: 600px; margin: auto; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .card img { max-width: 100%; height: auto; border-radius: 4px; margin-bottom: 15px; }
        .metadata p { margin: 5px 0; }
        .metadata strong { color: #333; }
    </style>
</head>
<body>
    <div class="card">
        <img src="{{.ImageName}}" alt="Generated image for prompt: {{.Record.PromptBase}}">
        <div class="metadata">
            <p><strong>Prompt:</strong> {{.Record.PromptBase}}</p>
            <p><strong>Style:</strong> {{.Record.StyleLabel}}</p>
            <p><strong>Model:</strong> {{.Record.ModelName}}</p>
            <p><strong>Generated:</strong> {{.Record.GeneratedAt}}</p>
            <p><strong>Full Prompt Used:</strong> {{.Record.PromptFull}}</p>
        </div>
    </div>
</body>
</html>
`))

// RenderManifest はレコードのメタデータを埋め込んだカード HTML を生成します。
// 値は HTML エスケープされます。
func RenderManifest(rec domain.ImageRecord, imageName string) ([]byte, error) {
	var buf bytes.Buffer
	err := manifestTemplate.Execute(&buf, struct {
		Record    domain.ImageRecord
		ImageName string
	}{rec, imageName})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
