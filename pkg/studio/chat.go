package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-studio-kit/pkg/conversation"
	"github.com/shouni/gemini-studio-kit/pkg/domain"
	"github.com/shouni/gemini-studio-kit/pkg/imgcodec"
)

// Submit は入力欄からの送信を処理します。
// 添付画像があればマルチモーダル、トリガーで始まれば画像生成、それ以外は通常のチャットです。
// 送信した添付画像は応答後にクリアします。画像を解釈できなかった場合や、
// 応答待ちの間に別の画像へ差し替えられた場合は残します。
func (s *Session) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	staged, hasStaged := s.stage.Get()
	if text == "" && !hasStaged {
		return nil
	}

	if !s.Configured() {
		n := s.notify(msgNotConfiguredSubmit, domain.ErrNotConfigured, nil)
		s.stage.Clear()
		return n
	}

	if hasStaged {
		dispatched, err := s.multimodalTurn(ctx, text, staged)
		if dispatched {
			s.stage.ClearIf(staged.DataURL)
		}
		return err
	}

	if trigger, rest, ok := matchTrigger(text); ok {
		return s.submitImageRequest(ctx, trigger, rest)
	}
	return s.chatTurn(ctx, text)
}

// ActivateQuickAction は添付画像に対して定型の質問を送ります。
func (s *Session) ActivateQuickAction(ctx context.Context, actionID string) error {
	if !s.Configured() {
		return s.notify(msgNotConfiguredAction, domain.ErrNotConfigured, nil)
	}
	action, ok := domain.FindQuickAction(actionID)
	if !ok {
		return s.notify(fmt.Sprintf(msgUnknownAction, actionID), domain.ErrUnknownAction, nil)
	}
	staged, ok := s.stage.Get()
	if !ok {
		return s.notify(msgNeedStagedImage, domain.ErrNoStagedImage, nil)
	}

	dispatched, err := s.multimodalTurn(ctx, action.Prompt, staged)
	if dispatched {
		s.stage.ClearIf(staged.DataURL)
	}
	return err
}

// chatTurn は通常のテキストチャットを1往復します。
func (s *Session) chatTurn(ctx context.Context, text string) error {
	s.transcript.AppendUser(text)
	thinkingID := newCorrelationID("think")
	s.transcript.AppendBot(msgThinking, conversation.Provisional(), conversation.WithCorrelation(thinkingID))

	reply, err := s.chat.Send(ctx, text)
	s.transcript.RemoveByCorrelationID(thinkingID)
	if err != nil {
		slog.ErrorContext(ctx, "チャットの応答取得に失敗しました", "error", err)
		return s.notify(ClassifyChatError(err), domain.ErrService, err)
	}
	s.transcript.AppendBot(reply)
	return nil
}

// multimodalTurn は添付画像とテキストを送ります。
// dispatched は外部サービスへのリクエストを行ったかどうかです。
func (s *Session) multimodalTurn(ctx context.Context, text string, staged domain.StagedImage) (dispatched bool, err error) {
	s.transcript.AppendUser(text, conversation.WithAttachedImage(staged.DataURL))
	thinkingID := newCorrelationID("think")
	s.transcript.AppendBot(msgThinkingWithImage, conversation.Provisional(), conversation.WithCorrelation(thinkingID))

	payload, err := imgcodec.Decode(staged.DataURL)
	if err == nil {
		_, err = payload.Bytes()
	}
	if err != nil {
		s.transcript.RemoveByCorrelationID(thinkingID)
		slog.WarnContext(ctx, "添付画像を解釈できませんでした", "error", err)
		return false, s.notify(msgImageDecodeFailed, domain.ErrDecode, err)
	}

	reply, err := s.vision.Respond(ctx, payload, text)
	s.transcript.RemoveByCorrelationID(thinkingID)
	if err != nil {
		slog.ErrorContext(ctx, "画像付きリクエストに失敗しました", "error", err)
		return true, s.notify(msgMultimodalError, domain.ErrService, err)
	}
	s.transcript.AppendBot(reply)
	return true, nil
}
