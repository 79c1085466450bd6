package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"agrimitra/internal/gateway"
	"agrimitra/internal/identity"
	"agrimitra/internal/model"
)

type fakeExchanger struct {
	mu      sync.Mutex
	calls   int
	replies []string
	err     error
	delay   time.Duration
	inCall  int
	overlap bool
}

func (f *fakeExchanger) Exchange(_ context.Context, _ []model.Message, turn model.Message, _ string) (model.Message, error) {
	f.mu.Lock()
	f.calls++
	f.inCall++
	if f.inCall > 1 {
		f.overlap = true
	}
	call := f.calls
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inCall--
	f.mu.Unlock()

	if f.err != nil {
		return model.Message{}, f.err
	}
	reply := fmt.Sprintf("reply %d to %s", call, turn.Content.Flatten())
	if len(f.replies) > 0 {
		reply = f.replies[(call-1)%len(f.replies)]
	}
	return model.NewMessage(model.RoleAssistant, model.TextContent{Text: reply}), nil
}

type recordedAppend struct {
	msg   model.Message
	owner string
	bot   string
}

type fakePersister struct {
	mu      sync.Mutex
	appends []recordedAppend
}

func (f *fakePersister) AppendIfAuthenticated(_ context.Context, msg model.Message, ownerID, botIdentity string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, recordedAppend{msg: msg, owner: ownerID, bot: botIdentity})
}

func (f *fakePersister) snapshot() []recordedAppend {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedAppend, len(f.appends))
	copy(out, f.appends)
	return out
}

func waitForAppends(f *fakePersister, n int) []recordedAppend {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := f.snapshot()
		if len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	return f.snapshot()
}

func TestConversationGreeting(t *testing.T) {
	Convey("Given a fresh conversation", t, func() {
		conv := New("Tomato Specialist", "en", &fakeExchanger{}, nil, nil)
		defer conv.Close()

		Convey("Then it opens active with a single greeting from the assistant", func() {
			So(conv.State(), ShouldEqual, StateActive)

			msgs := conv.Messages()
			So(msgs, ShouldHaveLength, 1)
			So(msgs[0].Role, ShouldEqual, model.RoleAssistant)
			So(msgs[0].Content.Flatten(), ShouldEqual,
				"Hello! I'm your Tomato Specialist. I can help you identify plant diseases and provide farming advice. How can I assist you today?")
		})
	})
}

func TestConversationExchange(t *testing.T) {
	Convey("Given an active conversation", t, func() {
		ex := &fakeExchanger{replies: []string{"Looks like early blight."}}
		conv := New("Tomato Specialist", "en", ex, nil, nil)
		defer conv.Close()
		ctx := context.Background()

		Convey("When the farmer sends a text turn", func() {
			userMsg, reply, err := conv.Exchange(ctx, model.TextContent{Text: "My leaves have brown spots"})

			Convey("Then both turns land on the transcript in order", func() {
				So(err, ShouldBeNil)
				So(userMsg.Role, ShouldEqual, model.RoleUser)
				So(reply.Role, ShouldEqual, model.RoleAssistant)
				So(reply.Content.Flatten(), ShouldEqual, "Looks like early blight.")

				msgs := conv.Messages()
				So(msgs, ShouldHaveLength, 3)
				So(msgs[1].Content.Flatten(), ShouldEqual, "My leaves have brown spots")
				So(msgs[2].Content.Flatten(), ShouldEqual, "Looks like early blight.")
				So(conv.State(), ShouldEqual, StateActive)
			})
		})

		Convey("When the gateway rejects the exchange with a rate limit", func() {
			ex.err = &gateway.Error{Kind: gateway.KindRateLimited, Message: "rate limits exceeded"}
			_, reply, err := conv.Exchange(ctx, model.TextContent{Text: "hello?"})

			Convey("Then the apology appears in-band and the error is still returned", func() {
				So(err, ShouldNotBeNil)
				So(reply.Role, ShouldEqual, model.RoleAssistant)
				So(reply.Content.Flatten(), ShouldEqual, "Sorry, rate limits exceeded. Please try again later.")

				msgs := conv.Messages()
				So(msgs[len(msgs)-1].Content.Flatten(), ShouldEqual, "Sorry, rate limits exceeded. Please try again later.")
				So(conv.State(), ShouldEqual, StateActive)
			})
		})

		Convey("When the gateway fails with an untyped error", func() {
			ex.err = fmt.Errorf("connection reset")
			_, reply, err := conv.Exchange(ctx, model.TextContent{Text: "hello?"})

			Convey("Then the generic apology is used", func() {
				So(err, ShouldNotBeNil)
				So(reply.Content.Flatten(), ShouldEqual, "Sorry, I encountered an error. Please try again.")
			})
		})
	})
}

func TestConversationSerialization(t *testing.T) {
	Convey("Given concurrent exchanges on one conversation", t, func() {
		ex := &fakeExchanger{delay: 20 * time.Millisecond}
		conv := New("Rice Specialist", "en", ex, nil, nil)
		defer conv.Close()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, _, _ = conv.Exchange(ctx, model.TextContent{Text: fmt.Sprintf("turn %d", i)})
			}(i)
		}
		wg.Wait()

		Convey("Then the exchanges never overlap and the transcript alternates", func() {
			So(ex.overlap, ShouldBeFalse)

			msgs := conv.Messages()
			So(msgs, ShouldHaveLength, 9)
			for i := 1; i < len(msgs); i += 2 {
				So(msgs[i].Role, ShouldEqual, model.RoleUser)
				So(msgs[i+1].Role, ShouldEqual, model.RoleAssistant)
			}
		})
	})
}

type blockingExchanger struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingExchanger) Exchange(_ context.Context, _ []model.Message, _ model.Message, _ string) (model.Message, error) {
	close(b.started)
	<-b.release
	return model.NewMessage(model.RoleAssistant, model.TextContent{Text: "done"}), nil
}

func TestConversationReadableDuringExchange(t *testing.T) {
	Convey("Given an exchange in flight", t, func() {
		ex := &blockingExchanger{
			started: make(chan struct{}),
			release: make(chan struct{}),
		}
		conv := New("Potato Specialist", "en", ex, nil, nil)
		defer conv.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = conv.Exchange(context.Background(), model.TextContent{Text: "tubers are rotting"})
		}()
		<-ex.started

		Convey("Then reads answer immediately instead of waiting for the reply", func() {
			So(conv.State(), ShouldEqual, StateAwaitingResponse)

			msgs := conv.Messages()
			So(msgs, ShouldHaveLength, 2)
			So(msgs[1].Role, ShouldEqual, model.RoleUser)
			So(msgs[1].Content.Flatten(), ShouldEqual, "tubers are rotting")

			So(conv.Language(), ShouldEqual, "en")
		})

		Convey("Then ownership changes land without blocking", func() {
			conv.SetOwner("farmer-9")
			So(conv.Owner(), ShouldEqual, "farmer-9")
		})

		close(ex.release)
		<-done

		Convey("And after the reply the conversation is active again", func() {
			So(conv.State(), ShouldEqual, StateActive)
			msgs := conv.Messages()
			So(msgs[len(msgs)-1].Content.Flatten(), ShouldEqual, "done")
		})
	})
}

func TestConversationPersistence(t *testing.T) {
	Convey("Given a conversation with a persister", t, func() {
		ex := &fakeExchanger{replies: []string{"Use neem oil."}}
		store := &fakePersister{}
		ctx := context.Background()

		Convey("When no owner is bound", func() {
			conv := New("Tomato Specialist", "en", ex, store, nil)
			defer conv.Close()
			_, _, err := conv.Exchange(ctx, model.TextContent{Text: "aphids everywhere"})
			So(err, ShouldBeNil)

			Convey("Then nothing is persisted", func() {
				time.Sleep(50 * time.Millisecond)
				So(store.snapshot(), ShouldBeEmpty)
			})
		})

		Convey("When an owner is bound", func() {
			conv := New("Tomato Specialist", "en", ex, store, nil)
			defer conv.Close()
			conv.SetOwner("user-42")

			_, _, err := conv.Exchange(ctx, model.TextContent{Text: "aphids everywhere"})
			So(err, ShouldBeNil)

			Convey("Then both turns reach the persister with owner and bot", func() {
				got := waitForAppends(store, 2)
				So(got, ShouldHaveLength, 2)
				for _, a := range got {
					So(a.owner, ShouldEqual, "user-42")
					So(a.bot, ShouldEqual, "Tomato Specialist")
				}
			})

			Convey("Then the greeting itself was never persisted", func() {
				got := waitForAppends(store, 2)
				for _, a := range got {
					So(a.msg.Content.Flatten(), ShouldNotContainSubstring, "How can I assist you today?")
				}
			})
		})

		Convey("When the owner comes from an identity source", func() {
			ids := identity.NewSource()
			ids.Set(&identity.Identity{UserID: "user-7", Email: "farmer@example.com"})

			conv := New("Mango Specialist", "hi", ex, store, ids)
			defer conv.Close()

			So(conv.Owner(), ShouldEqual, "user-7")

			Convey("And sign-out unbinds it", func() {
				ids.Set(nil)
				So(conv.Owner(), ShouldEqual, "")
			})
		})
	})
}
