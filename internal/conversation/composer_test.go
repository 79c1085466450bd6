package conversation

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"agrimitra/internal/model"
)

func TestComposeText(t *testing.T) {
	Convey("Given a composer", t, func() {
		c := NewComposer(nil)

		Convey("When the input has content", func() {
			content, err := c.ComposeText("  My wheat is turning yellow  ")

			Convey("Then a trimmed text turn is composed", func() {
				So(err, ShouldBeNil)
				text, ok := content.(model.TextContent)
				So(ok, ShouldBeTrue)
				So(text.Text, ShouldEqual, "My wheat is turning yellow")
			})
		})

		Convey("When the input is empty or whitespace", func() {
			for _, raw := range []string{"", "   ", "\n\t "} {
				content, err := c.ComposeText(raw)

				So(content, ShouldBeNil)
				var verr *ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "text")
			}
		})
	})
}

func TestComposeImage(t *testing.T) {
	Convey("Given a composer", t, func() {
		c := NewComposer(nil)
		raw := []byte{0x89, 0x50, 0x4e, 0x47}

		Convey("When a PNG upload is composed", func() {
			content, err := c.ComposeImage(raw, "image/png", "leaf.png")

			Convey("Then the turn carries the caption and an inline data URI", func() {
				So(err, ShouldBeNil)
				mixed, ok := content.(model.MixedContent)
				So(ok, ShouldBeTrue)
				So(mixed.Parts, ShouldHaveLength, 2)

				text, ok := mixed.Parts[0].(model.TextContent)
				So(ok, ShouldBeTrue)
				So(text.Text, ShouldEqual, "Please analyze this crop leaf image.")

				img, ok := mixed.Parts[1].(model.ImageContent)
				So(ok, ShouldBeTrue)
				So(img.Name, ShouldEqual, "leaf.png")
				So(img.MimeType, ShouldEqual, "image/png")
				So(strings.HasPrefix(img.DataURI, "data:image/png;base64,"), ShouldBeTrue)

				encoded := strings.TrimPrefix(img.DataURI, "data:image/png;base64,")
				decoded, decErr := base64.StdEncoding.DecodeString(encoded)
				So(decErr, ShouldBeNil)
				So(decoded, ShouldResemble, raw)
			})
		})

		Convey("When the upload is empty", func() {
			_, err := c.ComposeImage(nil, "image/png", "leaf.png")

			var verr *ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Field, ShouldEqual, "image")
		})

		Convey("When the mime type is not an accepted image format", func() {
			for _, mime := range []string{"application/pdf", "text/plain", "image/tiff", ""} {
				_, err := c.ComposeImage(raw, mime, "leaf.bin")

				var verr *ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Field, ShouldEqual, "mime_type")
			}
		})
	})
}

func TestComposeScan(t *testing.T) {
	Convey("Given scan composition", t, func() {
		ctx := context.Background()

		Convey("When camera access is granted", func() {
			c := NewComposer(CameraGrantFunc(func(context.Context) (bool, error) { return true, nil }))
			content, err := c.ComposeScan(ctx)

			Convey("Then a scan turn is composed", func() {
				So(err, ShouldBeNil)
				So(content.Flatten(), ShouldEqual, "Scanned a leaf for analysis")
			})
		})

		Convey("When camera access is refused", func() {
			c := NewComposer(CameraGrantFunc(func(context.Context) (bool, error) { return false, nil }))
			content, err := c.ComposeScan(ctx)

			Convey("Then nothing is composed and the denial is reported", func() {
				So(content, ShouldBeNil)
				So(errors.Is(err, ErrPermissionDenied), ShouldBeTrue)
			})
		})

		Convey("When no camera grant is wired at all", func() {
			c := NewComposer(nil)
			_, err := c.ComposeScan(ctx)

			So(errors.Is(err, ErrPermissionDenied), ShouldBeTrue)
		})

		Convey("When the grant itself fails", func() {
			c := NewComposer(CameraGrantFunc(func(context.Context) (bool, error) {
				return false, errors.New("device busy")
			}))
			_, err := c.ComposeScan(ctx)

			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrPermissionDenied), ShouldBeFalse)
		})
	})
}
