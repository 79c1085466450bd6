package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestContentFlatten(t *testing.T) {
	Convey("Content flattens to its durable text form", t, func() {
		Convey("text content flattens verbatim", func() {
			So(TextContent{Text: "my tomato leaves have spots"}.Flatten(),
				ShouldEqual, "my tomato leaves have spots")
		})

		Convey("image content flattens to a marker carrying the file name", func() {
			c := ImageContent{MimeType: "image/png", DataURI: "data:image/png;base64,AAAA", Name: "leaf.png"}
			So(c.Flatten(), ShouldEqual, "[Image uploaded: leaf.png]")
		})

		Convey("an unnamed image falls back to a generic marker", func() {
			c := ImageContent{MimeType: "image/jpeg", DataURI: "data:image/jpeg;base64,AAAA"}
			So(c.Flatten(), ShouldEqual, "[Image uploaded: photo]")
		})

		Convey("mixed content with an image drops the caption", func() {
			c := MixedContent{Parts: []Content{
				TextContent{Text: "Please analyze this crop leaf image."},
				ImageContent{MimeType: "image/png", DataURI: "data:image/png;base64,AAAA", Name: "leaf.png"},
			}}
			So(c.Flatten(), ShouldEqual, "[Image uploaded: leaf.png]")
		})

		Convey("mixed content without images joins the text parts", func() {
			c := MixedContent{Parts: []Content{
				TextContent{Text: "first"},
				TextContent{Text: "second"},
			}}
			So(c.Flatten(), ShouldEqual, "first second")
		})
	})
}

func TestNewMessage(t *testing.T) {
	Convey("NewMessage stamps id, role and timestamp", t, func() {
		msg := NewMessage(RoleUser, TextContent{Text: "hello"})
		So(msg.ID, ShouldNotBeEmpty)
		So(msg.Role, ShouldEqual, RoleUser)
		So(msg.Timestamp.IsZero(), ShouldBeFalse)
		So(msg.Content.Flatten(), ShouldEqual, "hello")
	})
}
