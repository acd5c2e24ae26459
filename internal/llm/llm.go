// Package llm is the boundary to the text-generation backend. The rest of
// the application depends on the Generator interface; the OpenAI
// implementation lives in openai.go. Generation is treated as a black box:
// stateless per call, no retries, fail-fast on error or empty output.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/lhagen/tripchat/backend/internal/domain"
)

// PlanResult is the outcome of initial plan generation: the plan text plus
// the prompt that produced it. The prompt is persisted alongside the plan as
// the trip's seed artifact.
type PlanResult struct {
	Text   string
	Prompt string
}

// Generator is the port the services use to talk to the generation backend.
type Generator interface {
	// CreatePlan produces the initial travel plan for a destination and
	// duration. Called exactly once per trip, during the creation flow.
	CreatePlan(ctx context.Context, destination string, days int) (PlanResult, error)

	// Chat produces the assistant reply for one chat turn, given the trip's
	// plan text as context, the prior conversation in insertion order, and
	// the new user input.
	Chat(ctx context.Context, planContext string, history []domain.Message, input string) (string, error)
}

const planSystemPrompt = "You are a travel planner. Produce a clear day-by-day " +
	"itinerary for the requested destination and duration. Keep it practical " +
	"and concise."

const chatSystemPrompt = "You are a travel assistant for one specific trip. " +
	"Use the trip plan below to answer questions and adjust suggestions. Keep " +
	"answers concise and grounded in the plan unless the user asks otherwise."

// historyLimit caps how much conversation is replayed into one generation
// call. Only the most recent messages are sent.
const historyLimit = 20

// planPrompt renders the user-facing prompt for initial plan generation.
func planPrompt(destination string, days int) string {
	return fmt.Sprintf("Plan a %d day trip to %s.", days, destination)
}

// planContextPrompt renders the trip's plan as a context block for chat turns.
func planContextPrompt(planContext string) string {
	return "Trip plan:\n" + strings.TrimSpace(planContext)
}

// truncateHistory returns at most the last historyLimit messages.
func truncateHistory(history []domain.Message) []domain.Message {
	if len(history) <= historyLimit {
		return history
	}
	return history[len(history)-historyLimit:]
}
