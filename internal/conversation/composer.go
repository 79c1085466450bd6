package conversation

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"agrimitra/internal/model"
)

// ErrPermissionDenied is returned by scan composition when camera access
// is refused.
var ErrPermissionDenied = errors.New("camera permission denied")

// ValidationError reports user input that cannot be turned into a message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CameraGrant asks for camera access before a scan turn is composed.
// Implementations decide how consent is obtained; the server default is
// driven by configuration.
type CameraGrant interface {
	Request(ctx context.Context) (bool, error)
}

// CameraGrantFunc adapts a function to the CameraGrant interface.
type CameraGrantFunc func(ctx context.Context) (bool, error)

func (f CameraGrantFunc) Request(ctx context.Context) (bool, error) {
	return f(ctx)
}

// acceptedImageTypes are the image formats the inference gateway can read.
var acceptedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

const imageCaption = "Please analyze this crop leaf image."

// Composer turns raw user input into well-formed message content.
type Composer struct {
	camera CameraGrant
}

// NewComposer creates a composer. camera may be nil, in which case scan
// turns are always denied.
func NewComposer(camera CameraGrant) *Composer {
	return &Composer{camera: camera}
}

// ComposeText builds a text turn. Whitespace-only input is rejected so
// empty turns never reach the gateway.
func (c *Composer) ComposeText(raw string) (model.Content, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return model.TextContent{Text: text}, nil
}

// ComposeImage builds an image turn from uploaded bytes. The image is
// carried inline as a base64 data URI together with a fixed analysis
// caption.
func (c *Composer) ComposeImage(data []byte, mimeType, name string) (model.Content, error) {
	if len(data) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "must not be empty"}
	}
	if !acceptedImageTypes[mimeType] {
		return nil, &ValidationError{Field: "mime_type", Reason: fmt.Sprintf("unsupported image type %q", mimeType)}
	}

	uri := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	return model.MixedContent{
		Parts: []model.Content{
			model.TextContent{Text: imageCaption},
			model.ImageContent{MimeType: mimeType, DataURI: uri, Name: name},
		},
	}, nil
}

// ComposeScan builds a scan turn after obtaining camera consent. A refused
// grant returns ErrPermissionDenied and composes nothing.
func (c *Composer) ComposeScan(ctx context.Context) (model.Content, error) {
	if c.camera == nil {
		return nil, ErrPermissionDenied
	}
	granted, err := c.camera.Request(ctx)
	if err != nil {
		return nil, fmt.Errorf("request camera access: %w", err)
	}
	if !granted {
		return nil, ErrPermissionDenied
	}
	return model.TextContent{Text: "Scanned a leaf for analysis"}, nil
}
