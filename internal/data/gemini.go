package data

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// geminiRepo implements the generative responder using the Gemini API
type geminiRepo struct {
	client *genai.Client
	model  string
}

// NewGeminiRepo creates a Gemini responder repository
func NewGeminiRepo(ctx context.Context, apiKey, model string) (repo.ResponderRepo, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiRepo{client: client, model: model}, nil
}

// Generate passes the instructions as the system instruction
func (r *geminiRepo) Generate(ctx context.Context, instructions, utterance string) (string, error) {
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(utterance), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
