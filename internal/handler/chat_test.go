package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"agrimitra/internal/conversation"
	"agrimitra/internal/gateway"
	"agrimitra/internal/history"
	"agrimitra/internal/model"
	"agrimitra/internal/service"
	"agrimitra/internal/session"
)

type cannedExchanger struct {
	reply string
	err   error
}

func (e *cannedExchanger) Exchange(_ context.Context, _ []model.Message, _ model.Message, _ string) (model.Message, error) {
	if e.err != nil {
		return model.Message{}, e.err
	}
	return model.NewMessage(model.RoleAssistant, model.TextContent{Text: e.reply}), nil
}

type nullHistoryStore struct{}

func (nullHistoryStore) Append(context.Context, history.Row) error { return nil }
func (nullHistoryStore) ListByUser(context.Context, string) ([]history.Row, error) {
	return nil, nil
}
func (nullHistoryStore) DeleteByUser(context.Context, string) error { return nil }

func newTestRouter(ex *cannedExchanger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	chatSvc := service.NewChatService(
		session.NewMemoryStore(time.Hour),
		conversation.NewComposer(nil),
		ex,
		history.NewAdapter(nullHistoryStore{}),
	)
	hdl := NewChatHandler(chatSvc)

	engine := gin.New()
	chat := engine.Group("/api/v1/chat")
	chat.POST("/sessions", hdl.CreateSession)
	chat.GET("/sessions/:id", hdl.GetSession)
	chat.DELETE("/sessions/:id", hdl.DeleteSession)
	chat.PUT("/sessions/:id/language", hdl.SetLanguage)
	chat.GET("/sessions/:id/messages", hdl.GetMessages)
	chat.POST("/sessions/:id/messages", hdl.SendMessage)
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func openSession(engine *gin.Engine, body any) model.SessionResponse {
	w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions", body)
	So(w.Code, ShouldEqual, http.StatusOK)

	var env envelope
	So(json.Unmarshal(w.Body.Bytes(), &env), ShouldBeNil)

	var sess model.SessionResponse
	So(json.Unmarshal(env.Data, &sess), ShouldBeNil)
	return sess
}

func TestChatRoutes(t *testing.T) {
	Convey("Given the chat routes", t, func() {
		ex := &cannedExchanger{reply: "Check for late blight."}
		engine := newTestRouter(ex)

		Convey("When a session is opened", func() {
			sess := openSession(engine, model.CreateSessionRequest{ChatbotName: "Tomato", Language: "hi"})

			Convey("Then it is greeted and bound to the bot", func() {
				So(sess.SessionID, ShouldNotBeEmpty)
				So(sess.ChatbotName, ShouldEqual, "Tomato Specialist")
				So(sess.Language, ShouldEqual, "hi")
				So(sess.Messages, ShouldHaveLength, 1)
			})

			Convey("And a message round-trips through it", func() {
				w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions/"+sess.SessionID+"/messages",
					model.SendMessageRequest{Text: "leaves have dark spots"})
				So(w.Code, ShouldEqual, http.StatusOK)

				var env envelope
				So(json.Unmarshal(w.Body.Bytes(), &env), ShouldBeNil)

				var exch model.ExchangeResponse
				So(json.Unmarshal(env.Data, &exch), ShouldBeNil)
				So(exch.UserMessage.Content, ShouldEqual, "leaves have dark spots")
				So(exch.AssistantMessage.Content, ShouldEqual, "Check for late blight.")
			})

			Convey("And the language can be switched", func() {
				w := doJSON(engine, http.MethodPut, "/api/v1/chat/sessions/"+sess.SessionID+"/language",
					model.SetLanguageRequest{Language: "mr"})
				So(w.Code, ShouldEqual, http.StatusOK)

				w = doJSON(engine, http.MethodGet, "/api/v1/chat/sessions/"+sess.SessionID, nil)
				var env envelope
				So(json.Unmarshal(w.Body.Bytes(), &env), ShouldBeNil)
				var got model.SessionResponse
				So(json.Unmarshal(env.Data, &got), ShouldBeNil)
				So(got.Language, ShouldEqual, "mr")
			})

			Convey("And closing it makes later reads 404", func() {
				w := doJSON(engine, http.MethodDelete, "/api/v1/chat/sessions/"+sess.SessionID, nil)
				So(w.Code, ShouldEqual, http.StatusOK)

				w = doJSON(engine, http.MethodGet, "/api/v1/chat/sessions/"+sess.SessionID, nil)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the request body is invalid", func() {
			w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions", gin.H{"language": "en"})

			Convey("Then it is rejected with 400", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var resp model.ErrorResponse
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, 40001)
			})
		})

		Convey("When the bot name is unknown", func() {
			w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions",
				model.CreateSessionRequest{ChatbotName: "Dragonfruit"})
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a turn is sent to a missing session", func() {
			w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions/nope/messages",
				model.SendMessageRequest{Text: "hello"})
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the gateway is rate limited", func() {
			sess := openSession(engine, model.CreateSessionRequest{ChatbotName: "Rice"})
			ex.err = &gateway.Error{Kind: gateway.KindRateLimited, Message: "rate limits exceeded"}

			w := doJSON(engine, http.MethodPost, "/api/v1/chat/sessions/"+sess.SessionID+"/messages",
				model.SendMessageRequest{Text: "hello?"})

			Convey("Then the response is still 200 with the apology in-band", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var env envelope
				So(json.Unmarshal(w.Body.Bytes(), &env), ShouldBeNil)

				var exch model.ExchangeResponse
				So(json.Unmarshal(env.Data, &exch), ShouldBeNil)
				So(exch.AssistantMessage.Content, ShouldEqual, "Sorry, rate limits exceeded. Please try again later.")
			})
		})
	})
}
