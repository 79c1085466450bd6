package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"agrimitra/internal/conversation"
	"agrimitra/internal/history"
	"agrimitra/internal/i18n"
	"agrimitra/internal/model"
	"agrimitra/internal/model/catalog"
	"agrimitra/internal/pkg/id"
	"agrimitra/internal/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownBot      = errors.New("unknown chatbot")
)

// ChatService orchestrates chat sessions: session metadata lives in the
// session store, live transcripts live in in-process Conversation state
// machines, and finished turns flow to the history adapter for signed-in
// farmers.
type ChatService struct {
	mu            sync.Mutex
	conversations map[string]*conversation.Conversation

	sessions  session.Store
	composer  *conversation.Composer
	exchanger conversation.Exchanger
	history   *history.Adapter
}

func NewChatService(
	sessions session.Store,
	composer *conversation.Composer,
	exchanger conversation.Exchanger,
	historyAdapter *history.Adapter,
) *ChatService {
	return &ChatService{
		conversations: make(map[string]*conversation.Conversation),
		sessions:      sessions,
		composer:      composer,
		exchanger:     exchanger,
		history:       historyAdapter,
	}
}

// CreateSession opens a chat session with the named bot. Anonymous
// sessions are always allowed; ownerID is empty for them. Unknown
// language codes fall back to English.
func (s *ChatService) CreateSession(ctx context.Context, chatbotName, language, ownerID string) (*model.SessionResponse, error) {
	bot, ok := catalog.FindBot(chatbotName)
	if !ok {
		return nil, ErrUnknownBot
	}
	lang := string(i18n.Parse(language))

	data := &session.Data{
		ID:          id.New(),
		ChatbotName: bot.Name,
		Language:    lang,
		OwnerID:     ownerID,
	}
	if err := s.sessions.Create(ctx, data); err != nil {
		return nil, err
	}

	conv := conversation.New(bot.Identity(), lang, s.exchanger, s.history, nil)
	conv.SetOwner(ownerID)

	s.mu.Lock()
	s.conversations[data.ID] = conv
	s.mu.Unlock()

	log.Info().
		Str("session_id", data.ID).
		Str("chatbot", bot.Name).
		Str("language", lang).
		Bool("authenticated", ownerID != "").
		Msg("chat session created")

	return sessionResponse(data.ID, conv), nil
}

// resolve loads the conversation for a session, rebuilding it from stored
// session metadata when the in-memory copy is gone (restart or another
// replica). Rebuilt conversations start over from the greeting; only
// persisted history survives a restart.
func (s *ChatService) resolve(ctx context.Context, sessionID, ownerID string) (*conversation.Conversation, error) {
	data, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}
	if data.OwnerID != "" && data.OwnerID != ownerID {
		// Owned sessions are invisible to everyone else.
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[sessionID]
	if !ok {
		bot, found := catalog.FindBot(data.ChatbotName)
		if !found {
			return nil, ErrUnknownBot
		}
		conv = conversation.New(bot.Identity(), data.Language, s.exchanger, s.history, nil)
		conv.SetOwner(data.OwnerID)
		s.conversations[sessionID] = conv
	}

	// An anonymous session picks up ownership when its farmer signs in;
	// turns from before sign-in stay unpersisted.
	if data.OwnerID == "" && ownerID != "" {
		data.OwnerID = ownerID
		conv.SetOwner(ownerID)
		if err := s.sessions.Update(ctx, data); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to bind session owner")
		}
	}

	return conv, nil
}

// SendText runs one text exchange. A gateway failure still returns the
// exchange response: the apology is on the transcript, and the error is
// reported alongside for logging.
func (s *ChatService) SendText(ctx context.Context, sessionID, ownerID, text string) (*model.ExchangeResponse, error) {
	content, err := s.composer.ComposeText(text)
	if err != nil {
		return nil, err
	}
	return s.exchange(ctx, sessionID, ownerID, content)
}

// SendImage runs one image exchange from an upload.
func (s *ChatService) SendImage(ctx context.Context, sessionID, ownerID string, data []byte, mimeType, name string) (*model.ExchangeResponse, error) {
	content, err := s.composer.ComposeImage(data, mimeType, name)
	if err != nil {
		return nil, err
	}
	return s.exchange(ctx, sessionID, ownerID, content)
}

// Scan runs one scan exchange after camera consent.
func (s *ChatService) Scan(ctx context.Context, sessionID, ownerID string) (*model.ExchangeResponse, error) {
	content, err := s.composer.ComposeScan(ctx)
	if err != nil {
		return nil, err
	}
	return s.exchange(ctx, sessionID, ownerID, content)
}

func (s *ChatService) exchange(ctx context.Context, sessionID, ownerID string, content model.Content) (*model.ExchangeResponse, error) {
	conv, err := s.resolve(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}

	userMsg, reply, exErr := conv.Exchange(ctx, content)
	resp := &model.ExchangeResponse{
		UserMessage:      model.ToMessageView(userMsg),
		AssistantMessage: model.ToMessageView(reply),
	}
	return resp, exErr
}

// SetLanguage switches the session's reply language for subsequent
// exchanges.
func (s *ChatService) SetLanguage(ctx context.Context, sessionID, ownerID, language string) error {
	conv, err := s.resolve(ctx, sessionID, ownerID)
	if err != nil {
		return err
	}

	lang := string(i18n.Parse(language))
	conv.SetLanguage(lang)

	data, err := s.sessions.Get(ctx, sessionID)
	if err != nil || data == nil {
		return ErrSessionNotFound
	}
	data.Language = lang
	return s.sessions.Update(ctx, data)
}

// GetSession returns the session with its live transcript.
func (s *ChatService) GetSession(ctx context.Context, sessionID, ownerID string) (*model.SessionResponse, error) {
	conv, err := s.resolve(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(sessionID, conv), nil
}

// CloseSession ends a session and drops its in-memory transcript.
// Persisted history is untouched.
func (s *ChatService) CloseSession(ctx context.Context, sessionID, ownerID string) error {
	if _, err := s.resolve(ctx, sessionID, ownerID); err != nil {
		return err
	}

	s.mu.Lock()
	if conv, ok := s.conversations[sessionID]; ok {
		conv.Close()
		delete(s.conversations, sessionID)
	}
	s.mu.Unlock()

	return s.sessions.Delete(ctx, sessionID)
}

// GetHistory returns a signed-in farmer's persisted conversations grouped
// by bot.
func (s *ChatService) GetHistory(ctx context.Context, ownerID string) (map[string][]history.Row, error) {
	return s.history.LoadHistory(ctx, ownerID)
}

// PurgeHistory deletes all of a signed-in farmer's persisted history.
func (s *ChatService) PurgeHistory(ctx context.Context, ownerID string) error {
	return s.history.PurgeHistory(ctx, ownerID)
}

func sessionResponse(sessionID string, conv *conversation.Conversation) *model.SessionResponse {
	msgs := conv.Messages()
	views := make([]model.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, model.ToMessageView(m))
	}
	return &model.SessionResponse{
		SessionID:   sessionID,
		ChatbotName: conv.BotIdentity(),
		Language:    conv.Language(),
		Messages:    views,
	}
}
