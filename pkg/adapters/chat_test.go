package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestChatSession_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("テキストパーツを連結し思考パーツは除く", func(t *testing.T) {
		chat := &mockChat{sendFunc: func(parts ...genai.Part) (*genai.GenerateContentResponse, error) {
			require.Len(t, parts, 1)
			assert.Equal(t, "hello", parts[0].Text)
			resp := textResponse("Hi ", "there!")
			resp.Candidates[0].Content.Parts = append(resp.Candidates[0].Content.Parts, &genai.Part{Text: "(thinking)", Thought: true})
			return resp, nil
		}}
		reply, err := newChatSession(chat).Send(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "Hi there!", reply)
	})

	t.Run("空の応答は ErrEmptyReply", func(t *testing.T) {
		chat := &mockChat{sendFunc: func(...genai.Part) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{}, nil
		}}
		_, err := newChatSession(chat).Send(ctx, "hello")
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("API エラーはそのまま返す", func(t *testing.T) {
		apiErr := errors.New("API key not valid. Please pass a valid API key.")
		chat := &mockChat{sendFunc: func(...genai.Part) (*genai.GenerateContentResponse, error) {
			return nil, apiErr
		}}
		_, err := newChatSession(chat).Send(ctx, "hello")
		assert.ErrorIs(t, err, apiErr)
	})
}

func TestNewChatSession_NilClient(t *testing.T) {
	_, err := NewChatSession(context.Background(), nil, "")
	assert.Error(t, err)
}
