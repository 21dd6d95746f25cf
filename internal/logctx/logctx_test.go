package logctx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	stored := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "r-1")
	ctx := With(context.Background(), stored)

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	From(ctx, fallback).Info("hello")

	assert.True(t, strings.Contains(buf.String(), "request_id=r-1"), "got %q", buf.String())
}

func TestFromFallsBack(t *testing.T) {
	var buf bytes.Buffer
	fallback := slog.New(slog.NewTextHandler(&buf, nil))

	From(context.Background(), fallback).Info("hello")

	assert.True(t, strings.Contains(buf.String(), "hello"), "got %q", buf.String())
}

func TestFromWithoutFallbackUsesDefault(t *testing.T) {
	assert.NotNil(t, From(context.Background(), nil))
}
