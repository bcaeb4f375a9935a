package ai

import (
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/arvinlabs/arvin-backend/internal/model/chat"
)

func TestBuildChainInputSplitsHistoryAndQuery(t *testing.T) {
	window := []chat.Message{
		{Role: chat.RoleUser, Content: "first"},
		{Role: chat.RoleAssistant, Content: "reply"},
		{Role: chat.RoleUser, Content: "[User mood detected as neutral] latest"},
	}

	input := buildChainInput(window)

	if input["system"] != SystemPrompt {
		t.Fatal("system instructions must be attached verbatim")
	}
	if input["query"] != "[User mood detected as neutral] latest" {
		t.Fatalf("unexpected query: %v", input["query"])
	}

	history, ok := input["history"].([]*schema.Message)
	if !ok {
		t.Fatalf("history has unexpected type: %T", input["history"])
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history messages, got %d", len(history))
	}
	if history[0].Role != schema.User || history[1].Role != schema.Assistant {
		t.Fatalf("unexpected history roles: %s, %s", history[0].Role, history[1].Role)
	}
}

func TestBuildHistoryMessagesSkipsUnknownRoles(t *testing.T) {
	messages := []chat.Message{
		{Role: chat.RoleUser, Content: "hello"},
		{Role: chat.Role("system"), Content: "ignored"},
		{Role: chat.RoleAssistant, Content: "hi there"},
	}

	history := buildHistoryMessages(messages)
	if len(history) != 2 {
		t.Fatalf("expected 2 history messages, got %d", len(history))
	}
	if history[0].Content != "hello" || history[1].Content != "hi there" {
		t.Fatalf("unexpected history contents: %+v", history)
	}
}

func TestBuildHistoryMessagesEmpty(t *testing.T) {
	if history := buildHistoryMessages(nil); history != nil {
		t.Fatalf("expected nil history, got %v", history)
	}
}
