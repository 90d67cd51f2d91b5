package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultChatModel はテキストチャットとマルチモーダル応答の既定モデルです。
const DefaultChatModel = "gemini-2.5-flash"

// chatSender は genai.Chat のうち送信に使う部分です。
type chatSender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ChatSession はテキストチャットの1セッションです。
// 会話履歴は genai.Chat が保持するため、ここでは管理しません。
type ChatSession struct {
	chat chatSender
}

// NewChatSession は client 上に新しいチャットを作成します。
func NewChatSession(ctx context.Context, client *genai.Client, model string) (*ChatSession, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		model = DefaultChatModel
	}
	chat, err := client.Chats.Create(ctx, model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("チャットの作成に失敗しました: %w", err)
	}
	return newChatSession(chat), nil
}

func newChatSession(chat chatSender) *ChatSession {
	return &ChatSession{chat: chat}
}

// Send はメッセージを送信し、応答テキストを返します。
func (s *ChatSession) Send(ctx context.Context, message string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return extractText(resp)
}
