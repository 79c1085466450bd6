package history

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"agrimitra/internal/model"
)

// spyStore records calls and serves rows from memory.
type spyStore struct {
	appendCalls int
	rows        []Row
	nextID      int
}

func (s *spyStore) Append(ctx context.Context, row Row) error {
	s.appendCalls++
	s.nextID++
	row.ID = time.Now().Format("20060102") + "-" + string(rune('a'+s.nextID))
	s.rows = append(s.rows, row)
	return nil
}

func (s *spyStore) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	var out []Row
	for _, r := range s.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *spyStore) DeleteByUser(ctx context.Context, userID string) error {
	var kept []Row
	for _, r := range s.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

func TestAppendIfAuthenticated(t *testing.T) {
	Convey("AppendIfAuthenticated", t, func() {
		spy := &spyStore{}
		adapter := NewAdapter(spy)
		ctx := context.Background()

		Convey("is a no-op without an owner", func() {
			msg := model.NewMessage(model.RoleUser, model.TextContent{Text: "hello"})
			adapter.AppendIfAuthenticated(ctx, msg, "", "Tomato Specialist")
			So(spy.appendCalls, ShouldEqual, 0)
		})

		Convey("flattens and maps the assistant role to bot", func() {
			msg := model.NewMessage(model.RoleAssistant, model.TextContent{Text: "looks healthy"})
			adapter.AppendIfAuthenticated(ctx, msg, "user-1", "Tomato Specialist")

			So(spy.appendCalls, ShouldEqual, 1)
			So(spy.rows[0].Role, ShouldEqual, "bot")
			So(spy.rows[0].ChatbotName, ShouldEqual, "Tomato Specialist")
			So(spy.rows[0].Content, ShouldEqual, "looks healthy")
		})

		Convey("stores only the text summary of an image turn", func() {
			msg := model.NewMessage(model.RoleUser, model.MixedContent{Parts: []model.Content{
				model.TextContent{Text: "Please analyze this crop leaf image."},
				model.ImageContent{MimeType: "image/png", DataURI: "data:image/png;base64,AAAA", Name: "leaf.png"},
			}})
			adapter.AppendIfAuthenticated(ctx, msg, "user-1", "Tomato Specialist")

			So(spy.rows[0].Content, ShouldEqual, "[Image uploaded: leaf.png]")
			So(spy.rows[0].Content, ShouldNotContainSubstring, "base64")
		})
	})
}

func TestLoadAndPurgeHistory(t *testing.T) {
	Convey("LoadHistory groups by bot in creation order", t, func() {
		spy := &spyStore{}
		adapter := NewAdapter(spy)
		ctx := context.Background()

		base := time.Now()
		mk := func(role model.Role, text string, at time.Time) model.Message {
			msg := model.NewMessage(role, model.TextContent{Text: text})
			msg.Timestamp = at
			return msg
		}

		adapter.AppendIfAuthenticated(ctx, mk(model.RoleUser, "first", base), "user-1", "Tomato Specialist")
		adapter.AppendIfAuthenticated(ctx, mk(model.RoleAssistant, "second", base.Add(time.Second)), "user-1", "Tomato Specialist")
		adapter.AppendIfAuthenticated(ctx, mk(model.RoleUser, "rice question", base.Add(2*time.Second)), "user-1", "Rice Specialist")
		adapter.AppendIfAuthenticated(ctx, mk(model.RoleUser, "someone else", base), "user-2", "Tomato Specialist")

		grouped, err := adapter.LoadHistory(ctx, "user-1")
		So(err, ShouldBeNil)
		So(grouped, ShouldHaveLength, 2)
		So(grouped["Tomato Specialist"], ShouldHaveLength, 2)
		So(grouped["Tomato Specialist"][0].Content, ShouldEqual, "first")
		So(grouped["Tomato Specialist"][1].Content, ShouldEqual, "second")
		So(grouped["Rice Specialist"], ShouldHaveLength, 1)

		Convey("purge then load yields an empty grouped result", func() {
			So(adapter.PurgeHistory(ctx, "user-1"), ShouldBeNil)

			grouped, err := adapter.LoadHistory(ctx, "user-1")
			So(err, ShouldBeNil)
			So(grouped, ShouldBeEmpty)

			Convey("other owners are untouched", func() {
				grouped, err := adapter.LoadHistory(ctx, "user-2")
				So(err, ShouldBeNil)
				So(grouped["Tomato Specialist"], ShouldHaveLength, 1)
			})
		})
	})
}
