// Package gateway implements the exchange client against the hosted
// chat-completion endpoint. Single request per exchange, no streaming, no
// retry; failures are typed so the conversation can answer in-band.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"agrimitra/internal/config"
	"agrimitra/internal/model"
	"agrimitra/internal/pkg/tokens"
)

// Client talks to the inference endpoint.
type Client struct {
	cfg *config.GatewayConfig
	api *openai.Client
}

// New creates a gateway client. A missing API key does not fail here: it
// surfaces as KindMisconfigured per exchange so a later redeploy with the
// key fixes the instance without a restart of in-memory conversations.
func New(cfg *config.GatewayConfig) *Client {
	c := &Client{cfg: cfg}
	if cfg.APIKey != "" {
		apiCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			apiCfg.BaseURL = cfg.BaseURL
		}
		c.api = openai.NewClientWithConfig(apiCfg)
	}
	return c
}

// Exchange sends the windowed history plus the new turn, prefixed by the
// system instruction for targetLanguage, and decodes the first choice into
// an assistant message.
func (c *Client) Exchange(ctx context.Context, history []model.Message, turn model.Message, targetLanguage string) (model.Message, error) {
	if c.api == nil {
		return model.Message{}, &Error{Kind: KindMisconfigured, Message: "gateway API key is not configured"}
	}

	windowed := window(history, c.cfg.HistoryMessageLimit, c.cfg.HistoryTokenLimit)

	msgs := make([]openai.ChatCompletionMessage, 0, len(windowed)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemInstruction(targetLanguage),
	})
	for _, m := range windowed {
		msgs = append(msgs, toChatMessage(m))
	}
	msgs = append(msgs, toChatMessage(turn))

	req := openai.ChatCompletionRequest{
		Model:    c.cfg.Model,
		Messages: msgs,
	}
	if c.cfg.MaxTokens > 0 {
		req.MaxTokens = c.cfg.MaxTokens
	}
	if c.cfg.Temperature > 0 {
		req.Temperature = float32(c.cfg.Temperature)
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		gerr := classify(err)
		log.Warn().Err(err).Str("kind", gerr.Kind.String()).Msg("exchange failed")
		return model.Message{}, gerr
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return model.Message{}, &Error{Kind: KindUnavailable, Message: "completion body missing choices[0].message.content"}
	}

	return model.NewMessage(model.RoleAssistant, model.TextContent{Text: resp.Choices[0].Message.Content}), nil
}

// toChatMessage maps a message to the transport's two-party vocabulary.
// The switch over the content union is exhaustive.
func toChatMessage(m model.Message) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	if m.Role == model.RoleAssistant {
		role = openai.ChatMessageRoleAssistant
	}

	switch content := m.Content.(type) {
	case model.TextContent:
		return openai.ChatCompletionMessage{Role: role, Content: content.Text}
	case model.ImageContent:
		return openai.ChatCompletionMessage{
			Role:         role,
			MultiContent: []openai.ChatMessagePart{imagePart(content)},
		}
	case model.MixedContent:
		parts := make([]openai.ChatMessagePart, 0, len(content.Parts))
		for _, p := range content.Parts {
			switch part := p.(type) {
			case model.TextContent:
				parts = append(parts, openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: part.Text,
				})
			case model.ImageContent:
				parts = append(parts, imagePart(part))
			}
		}
		return openai.ChatCompletionMessage{Role: role, MultiContent: parts}
	default:
		// Unreachable while the union stays sealed.
		return openai.ChatCompletionMessage{Role: role, Content: m.Content.Flatten()}
	}
}

func imagePart(img model.ImageContent) openai.ChatMessagePart {
	return openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeImageURL,
		ImageURL: &openai.ChatMessageImageURL{
			URL:    img.DataURI,
			Detail: openai.ImageURLDetailAuto,
		},
	}
}

// window trims history to the most recent messages within the message and
// estimated-token limits. The seed greeting may fall out of the window on
// long conversations, which is fine: it is presentation, not context.
func window(history []model.Message, messageLimit, tokenLimit int) []model.Message {
	if len(history) == 0 {
		return history
	}

	if messageLimit > 0 && len(history) > messageLimit {
		history = history[len(history)-messageLimit:]
	}

	if tokenLimit > 0 {
		total := 0
		for _, m := range history {
			total += tokens.Estimate(m.Content.Flatten())
		}
		for total > tokenLimit && len(history) > 0 {
			total -= tokens.Estimate(history[0].Content.Flatten())
			history = history[1:]
		}
	}

	return history
}

// classify maps a transport error to the gateway taxonomy by HTTP status.
func classify(err error) *Error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Message: "rate limits exceeded", Err: err}
	case http.StatusPaymentRequired:
		return &Error{Kind: KindQuotaExhausted, Message: "payment required", Err: err}
	default:
		return &Error{Kind: KindUnavailable, Message: "inference endpoint unavailable", Err: err}
	}
}
