// Package conversation holds the per-session chat state machine and the
// composer that turns raw input into well-formed turns.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agrimitra/internal/gateway"
	"agrimitra/internal/identity"
	"agrimitra/internal/model"
)

// State describes where a conversation is in its lifecycle.
type State int

const (
	// StateEmpty is a conversation with no messages at all.
	StateEmpty State = iota
	// StateActive is a conversation ready to accept the next turn.
	StateActive
	// StateAwaitingResponse is a conversation with an exchange in flight.
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

const greetingFormat = "Hello! I'm your %s. I can help you identify plant diseases and provide farming advice. How can I assist you today?"

const persistTimeout = 10 * time.Second

// Exchanger produces an assistant reply for a user turn in the context of
// prior history.
type Exchanger interface {
	Exchange(ctx context.Context, history []model.Message, turn model.Message, targetLanguage string) (model.Message, error)
}

// Persister records finished turns for authenticated owners.
type Persister interface {
	AppendIfAuthenticated(ctx context.Context, msg model.Message, ownerID, botIdentity string)
}

// Conversation is a single chat thread with one bot. All exchanges on a
// conversation are serialized: a second Exchange blocks until the first
// finishes, so the transcript never interleaves. Reads stay responsive
// while an exchange is in flight; they see the pending user turn and
// StateAwaitingResponse.
type Conversation struct {
	// sendMu serializes exchanges end to end. mu guards the fields below
	// and is never held across the network round trip.
	sendMu sync.Mutex

	mu          sync.Mutex
	state       State
	botIdentity string
	language    string
	ownerID     string
	messages    []model.Message

	exchanger Exchanger
	persister Persister

	unsubscribe func()
}

// New creates a conversation seeded with the bot's greeting. The greeting
// is presentation only and is never persisted. ids may be nil; when given,
// the conversation tracks sign-in and sign-out through it until Close.
func New(botIdentity, language string, exchanger Exchanger, persister Persister, ids *identity.Source) *Conversation {
	c := &Conversation{
		state:       StateActive,
		botIdentity: botIdentity,
		language:    language,
		exchanger:   exchanger,
		persister:   persister,
	}
	c.messages = append(c.messages, model.NewMessage(model.RoleAssistant, model.TextContent{
		Text: fmt.Sprintf(greetingFormat, botIdentity),
	}))

	if ids != nil {
		c.unsubscribe = ids.Subscribe(func(id *identity.Identity) {
			if id == nil {
				c.SetOwner("")
				return
			}
			c.SetOwner(id.UserID)
		})
	}
	return c
}

// Close detaches the conversation from its identity source.
func (c *Conversation) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// BotIdentity reports the bot this conversation is bound to.
func (c *Conversation) BotIdentity() string {
	return c.botIdentity
}

// Language reports the current reply language code.
func (c *Conversation) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SetLanguage changes the reply language for subsequent exchanges. Earlier
// messages are not rewritten.
func (c *Conversation) SetLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = language
}

// Owner reports the current owner, empty for anonymous.
func (c *Conversation) Owner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerID
}

// SetOwner binds the conversation to a signed-in user, or back to
// anonymous with an empty id. Already-exchanged turns are not backfilled.
func (c *Conversation) SetOwner(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ownerID = ownerID
}

// State reports the lifecycle state. A caller observing
// StateAwaitingResponse knows an exchange is in flight on another
// goroutine.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Exchange appends the user turn, asks the gateway for a reply in the
// conversation's language, and appends the result. On gateway failure the
// reply is an in-band apology and the typed error is also returned so
// callers can log or map it; the transcript stays consistent either way.
//
// Both finished turns are persisted fire-and-forget when an owner is
// bound; persistence failures never affect the exchange.
func (c *Conversation) Exchange(ctx context.Context, content model.Content) (userMsg, reply model.Message, err error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()
	c.state = StateAwaitingResponse
	userMsg = model.NewMessage(model.RoleUser, content)
	history := make([]model.Message, len(c.messages))
	copy(history, c.messages)
	c.messages = append(c.messages, userMsg)
	language := c.language
	c.persistLocked(userMsg)
	c.mu.Unlock()

	reply, exErr := c.exchanger.Exchange(ctx, history, userMsg, language)
	if exErr != nil {
		reply = model.NewMessage(model.RoleAssistant, model.TextContent{Text: apologyFor(exErr)})
		err = exErr
	}

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.persistLocked(reply)
	c.state = StateActive
	c.mu.Unlock()

	return userMsg, reply, err
}

// persistLocked hands a finished turn to the persister on its own
// goroutine. Caller holds c.mu; owner and bot are captured before the
// handoff so later changes cannot race.
func (c *Conversation) persistLocked(msg model.Message) {
	if c.persister == nil || c.ownerID == "" {
		return
	}
	owner, bot := c.ownerID, c.botIdentity
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		c.persister.AppendIfAuthenticated(ctx, msg, owner, bot)
	}()
}

// apologyFor maps an exchange failure to the sentence shown in the chat.
func apologyFor(err error) string {
	var gerr *gateway.Error
	if errors.As(err, &gerr) {
		return gerr.Apology()
	}
	return "Sorry, I encountered an error. Please try again."
}
