package session

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory session store", t, func() {
		store := NewMemoryStore(time.Hour)
		defer store.Close()
		ctx := context.Background()

		data := &Data{
			ID:          "sess-1",
			ChatbotName: "Tomato",
			Language:    "hi",
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		Convey("When a session is created", func() {
			err := store.Create(ctx, data)
			So(err, ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Get(ctx, "sess-1")
				So(err, ShouldBeNil)
				So(got, ShouldNotBeNil)
				So(got.ChatbotName, ShouldEqual, "Tomato")
				So(got.Language, ShouldEqual, "hi")
			})

			Convey("Then updating it changes the stored state", func() {
				data.Language = "mr"
				So(store.Update(ctx, data), ShouldBeNil)

				got, err := store.Get(ctx, "sess-1")
				So(err, ShouldBeNil)
				So(got.Language, ShouldEqual, "mr")
			})

			Convey("Then deleting it makes it unreadable", func() {
				So(store.Delete(ctx, "sess-1"), ShouldBeNil)

				got, err := store.Get(ctx, "sess-1")
				So(err, ShouldBeNil)
				So(got, ShouldBeNil)
			})
		})

		Convey("When a missing session is read", func() {
			got, err := store.Get(ctx, "no-such-session")

			Convey("Then nil is returned without an error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeNil)
			})
		})

		Convey("When a missing session is updated", func() {
			err := store.Update(ctx, &Data{ID: "no-such-session"})

			Convey("Then ErrNotFound is returned", func() {
				So(err, ShouldEqual, ErrNotFound)
			})
		})
	})
}

func TestMemoryStoreIsolation(t *testing.T) {
	Convey("Given a stored session", t, func() {
		store := NewMemoryStore(time.Hour)
		defer store.Close()
		ctx := context.Background()

		original := &Data{ID: "sess-iso", ChatbotName: "Cotton", Language: "en"}
		So(store.Create(ctx, original), ShouldBeNil)

		Convey("When a caller mutates the value it read back", func() {
			first, err := store.Get(ctx, "sess-iso")
			So(err, ShouldBeNil)
			first.OwnerID = "farmer-1"

			Convey("Then other readers and the store itself are unaffected", func() {
				second, err := store.Get(ctx, "sess-iso")
				So(err, ShouldBeNil)
				So(second.OwnerID, ShouldEqual, "")
			})
		})

		Convey("When the value passed to Create is mutated afterwards", func() {
			original.Language = "mr"

			got, err := store.Get(ctx, "sess-iso")
			So(err, ShouldBeNil)
			So(got.Language, ShouldEqual, "en")
		})

		Convey("When one request claims the session while others poll it", func() {
			// An anonymous session being bound to an owner must never share
			// memory with concurrent readers of the same session.
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(claim bool) {
					defer wg.Done()
					d, err := store.Get(ctx, "sess-iso")
					if err != nil || d == nil {
						return
					}
					if claim {
						d.OwnerID = "farmer-1"
						_ = store.Update(ctx, d)
					} else {
						_ = d.OwnerID
					}
				}(i%2 == 0)
			}
			wg.Wait()

			got, err := store.Get(ctx, "sess-iso")
			So(err, ShouldBeNil)
			So(got.OwnerID, ShouldEqual, "farmer-1")
		})
	})
}

func TestMemoryStoreExpiry(t *testing.T) {
	Convey("Given a store with a very short TTL", t, func() {
		store := NewMemoryStore(10 * time.Millisecond)
		defer store.Close()
		ctx := context.Background()

		So(store.Create(ctx, &Data{ID: "sess-ttl", ChatbotName: "Rice"}), ShouldBeNil)

		Convey("When the TTL elapses", func() {
			time.Sleep(30 * time.Millisecond)

			Convey("Then the session reads back as missing", func() {
				got, err := store.Get(ctx, "sess-ttl")
				So(err, ShouldBeNil)
				So(got, ShouldBeNil)
			})
		})
	})
}
