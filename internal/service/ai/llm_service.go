package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/arvinlabs/arvin-backend/internal/config"
	"github.com/arvinlabs/arvin-backend/internal/model/chat"
)

// Service generates assistant replies through the configured chat model.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the generation service and compiles its prompt chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Generate produces a single assistant reply for the bounded context
// window. The window already contains the mood-annotated user message as
// its final entry; the fixed system instructions are attached verbatim.
func (s *Service) Generate(ctx context.Context, window []chat.Message) (string, error) {
	if len(window) == 0 {
		return "", fmt.Errorf("empty context window")
	}

	response, err := s.chain.Invoke(ctx, buildChainInput(window))
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] generated reply for user=%s, length=%d", window[len(window)-1].UserID, len(response.Content))
	return response.Content, nil
}

// buildChainInput splits the window into prior history and the trailing
// user query, the shape the prompt template expects.
func buildChainInput(window []chat.Message) map[string]any {
	last := window[len(window)-1]
	return map[string]any{
		"system":  SystemPrompt,
		"history": buildHistoryMessages(window[:len(window)-1]),
		"query":   last.Content,
	}
}

func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
