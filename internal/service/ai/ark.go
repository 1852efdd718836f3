package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/myrecovery365/sobrio/backend/internal/config"
	"github.com/myrecovery365/sobrio/backend/internal/model/chat"
)

// ArkCompleter runs completions through a Volcengine Ark chat model behind
// an eino prompt-template chain.
type ArkCompleter struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArkCompleter compiles the chat chain once at startup.
func NewArkCompleter(ctx context.Context, cfg config.AIConfig) (*ArkCompleter, error) {
	var temperature *float32
	if cfg.Temperature != nil {
		val := float32(*cfg.Temperature)
		temperature = &val
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.ArkBaseURL,
		Region:      cfg.ArkRegion,
		APIKey:      cfg.ArkAPIKey,
		AccessKey:   cfg.ArkAccessKey,
		SecretKey:   cfg.ArkSecretKey,
		Model:       cfg.ArkModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
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
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}

	return &ArkCompleter{chain: runnable}, nil
}

// Complete invokes the chain with structured messages instead of one
// flattened prompt; the template kinds and context block are identical to
// the text path.
func (c *ArkCompleter) Complete(ctx context.Context, req PromptRequest) (string, error) {
	input := map[string]any{
		"system":  SystemText(req),
		"history": historyMessages(req.History),
		"query":   req.UserText,
	}

	response, err := c.chain.Invoke(ctx, input)
	if err != nil {
		return "", wrapErr(err)
	}

	text := strings.TrimSpace(response.Content)
	if text == "" {
		return "", &BackendError{Kind: FailureMalformed, Err: fmt.Errorf("empty completion from ark chain")}
	}
	return text, nil
}

func historyMessages(history []chat.Turn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}
	messages := make([]*schema.Message, 0, len(history)*2)
	for _, turn := range history {
		messages = append(messages, schema.UserMessage(turn.UserText))
		messages = append(messages, schema.AssistantMessage(turn.AssistantText, nil))
	}
	return messages
}
