package data

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// openaiRepo implements the generative responder using the OpenAI chat API
type openaiRepo struct {
	client *openai.Client
	model  string
}

// NewOpenAIRepo creates an OpenAI responder repository
func NewOpenAIRepo(apiKey, model string) repo.ResponderRepo {
	return newOpenAIRepoWithConfig(openai.DefaultConfig(apiKey), model)
}

func newOpenAIRepoWithConfig(config openai.ClientConfig, model string) *openaiRepo {
	if model == "" {
		model = "gpt-4.1"
	}
	return &openaiRepo{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Generate sends the instructions as the system message and the utterance as the user message
func (r *openaiRepo) Generate(ctx context.Context, instructions, utterance string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: utterance},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return resp.Choices[0].Message.Content, nil
}
