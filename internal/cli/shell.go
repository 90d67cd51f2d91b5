package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/events"
	"github.com/shouni/gemini-studio-kit/pkg/studio"
)

const helpText = `commands:
  <text>                    send a chat message ("draw: ..." generates an image)
  /style <id> <prompt>      generate an image with a style
  /select <id> <text>       generate an image from selected text
  /action <id>              run a quick action on the staged image
  /stage <path|url|#id>     stage an image (file, http(s), gs://, data URL, gallery id)
  /unstage                  remove the staged image
  /gallery                  list gallery cards
  /export <id>              export one card
  /export-all               export the whole gallery
  /styles, /actions         list styles or quick actions
  /help, /quit`

// Shell は1行1コマンドの対話シェルです。
// 画像生成やチャットはバックグラウンドで実行し、複数のリクエストを同時に待てます。
type Shell struct {
	session   *studio.Session
	in        io.Reader
	exportDir string

	mu  sync.Mutex
	out io.Writer
}

// NewShell は Shell を作成します。
func NewShell(session *studio.Session, in io.Reader, out io.Writer, exportDir string) *Shell {
	return &Shell{session: session, in: in, out: out, exportDir: exportDir}
}

func (sh *Shell) printf(format string, args ...any) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fmt.Fprintf(sh.out, format+"\n", args...)
}

// Run は入力が終わるか /quit まで読み続け、実行中のリクエストの完了を待ちます。
func (sh *Shell) Run(ctx context.Context) error {
	unsubscribe := sh.session.Bus().Subscribe(sh.onEvent)
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	scanner := bufio.NewScanner(sh.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}
		sh.dispatch(gctx, g, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("入力の読み込みに失敗しました: %w", err)
	}
	return g.Wait()
}

// dispatch は1行を解釈して実行します。
// 入口処理のエラーはトランスクリプトに表示済みのため、ここでは中断しません。
func (sh *Shell) dispatch(ctx context.Context, g *errgroup.Group, line string) {
	background := func(fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				slog.DebugContext(ctx, "リクエストは完了しませんでした", "error", err)
			}
			return nil
		})
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(cmd, "/") {
		background(func() error { return sh.session.Submit(ctx, line) })
		return
	}

	switch cmd {
	case "/style", "/select":
		id, prompt, _ := strings.Cut(arg, " ")
		if cmd == "/style" {
			background(func() error { return sh.session.ActivateStyle(ctx, id, prompt) })
		} else {
			background(func() error { return sh.session.ActivateContextMenuStyle(ctx, id, prompt) })
		}
	case "/action":
		background(func() error { return sh.session.ActivateQuickAction(ctx, arg) })
	case "/stage":
		sh.stage(ctx, arg)
	case "/unstage":
		sh.session.ClearStagedImage()
	case "/gallery":
		sh.listGallery()
	case "/export":
		id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
		if err != nil {
			sh.printf("usage: /export <id>")
			return
		}
		_, _ = sh.session.ExportSingle(ctx, id)
	case "/export-all":
		background(func() error {
			_, err := sh.session.ExportAll(ctx)
			return err
		})
	case "/styles":
		for _, s := range domain.Styles {
			sh.printf("  %-10s %s", s.ID, s.Name)
		}
	case "/actions":
		for _, a := range domain.QuickActions {
			sh.printf("  %-10s %s", a.ID, a.Label)
		}
	default:
		sh.printf("%s", helpText)
	}
}

func (sh *Shell) stage(ctx context.Context, arg string) {
	if arg == "" {
		sh.printf("usage: /stage <path|url|#id>")
		return
	}
	if strings.HasPrefix(arg, "#") {
		id, err := strconv.ParseInt(arg[1:], 10, 64)
		if err != nil {
			sh.printf("usage: /stage #<gallery id>")
			return
		}
		_ = sh.session.StageGalleryRecord(id)
		return
	}
	_ = sh.session.StageFromSource(ctx, arg)
}

func (sh *Shell) listGallery() {
	recs := sh.session.Gallery().All()
	if len(recs) == 0 {
		sh.printf("(gallery is empty)")
		return
	}
	for _, r := range recs {
		sh.printf("  #%d  %s  [%s]  %s", r.ID, r.GeneratedAt, r.StyleLabel, r.PromptBase)
	}
}

// onEvent はコアからの通知を表示し、エクスポート結果をファイルに書き出します。
func (sh *Shell) onEvent(ev events.Event) {
	switch ev.Type {
	case events.TranscriptChanged:
		if ev.Removed || ev.Entry == nil {
			return
		}
		sh.printEntry(*ev.Entry)
	case events.GalleryChanged:
		if ev.Inserted != nil {
			sh.printf("[gallery] + #%d %s (%s)", ev.Inserted.ID, ev.Inserted.PromptBase, ev.Inserted.StyleLabel)
		}
		if ev.Evicted != nil {
			sh.printf("[gallery] - #%d %s", ev.Evicted.ID, ev.Evicted.PromptBase)
		}
	case events.StagedImageChanged:
		if ev.Staged == nil {
			sh.printf("[staged] cleared")
		} else {
			sh.printf("[staged] %s (quick actions: /actions)", ev.Staged.MimeType)
		}
	case events.ExportReady:
		sh.writeExport(ev.Filename, ev.Data, ev.Skipped)
	case events.ExportFailed:
		sh.printf("[export] failed: %s", ev.Reason)
	}
}

func (sh *Shell) printEntry(e domain.Entry) {
	switch {
	case e.IsProvisional():
		sh.printf("… %s", e.Text)
	case e.Role == domain.RoleUser && e.AttachedImage != "":
		sh.printf("you [image]> %s", e.Text)
	case e.Role == domain.RoleUser:
		sh.printf("you> %s", e.Text)
	default:
		sh.printf("bot> %s", e.Text)
	}
}

func (sh *Shell) writeExport(filename string, data []byte, skipped int) {
	path := filepath.Join(sh.exportDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("エクスポートの書き出しに失敗しました", "path", path, "error", err)
		sh.printf("[export] failed to write %s: %v", path, err)
		return
	}
	if skipped > 0 {
		sh.printf("[export] saved %s (%d card(s) skipped)", path, skipped)
		return
	}
	sh.printf("[export] saved %s", path)
}
