package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lhagen/tripchat/backend/internal/domain"
)

// OpenAI implements Generator on the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

var _ Generator = (*OpenAI)(nil)

// NewOpenAI constructs an OpenAI-backed Generator. Extra request options are
// appended after the API key, so tests can override the base URL.
func NewOpenAI(apiKey, model string, opts ...option.RequestOption) *OpenAI {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
	}
}

// CreatePlan generates the initial itinerary for a trip.
func (o *OpenAI) CreatePlan(ctx context.Context, destination string, days int) (PlanResult, error) {
	prompt := planPrompt(destination, days)

	text, err := o.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(planSystemPrompt),
		openai.UserMessage(prompt),
	})
	if err != nil {
		return PlanResult{}, fmt.Errorf("llm.OpenAI.CreatePlan: %w", err)
	}

	return PlanResult{Text: text, Prompt: prompt}, nil
}

// Chat generates the assistant reply for one chat turn.
func (o *OpenAI) Chat(ctx context.Context, planContext string, history []domain.Message, input string) (string, error) {
	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(chatSystemPrompt),
		openai.SystemMessage(planContextPrompt(planContext)),
	}

	for _, m := range truncateHistory(history) {
		switch m.Role {
		case domain.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Text))
		case domain.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		}
	}
	msgs = append(msgs, openai.UserMessage(input))

	text, err := o.complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("llm.OpenAI.Chat: %w", err)
	}
	return text, nil
}

// complete performs one chat completion call and returns the trimmed reply.
// Backend failures and empty replies both surface as domain.ErrGeneration.
func (o *OpenAI) complete(ctx context.Context, msgs []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrGeneration)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrGeneration)
	}
	return text, nil
}
