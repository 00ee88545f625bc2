// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package speech writes the short congratulation read out when an award is
// announced on the big screen.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

var ErrEmptyInput = errors.New("winner and award names are required")

// Writer produces a speech for a winner. Implementations may call out to a
// text generation service, so ctx bounds the call.
type Writer interface {
	Write(ctx context.Context, winnerName, awardName string) (string, error)
}

// DefaultTemplate is used when NewTemplateWriter is given an empty string
const DefaultTemplate = `Please join me in congratulating {{.Winner}}, this year's {{.Award}}! ` +
	`{{.Winner}}, your dedication has inspired everyone around you, and tonight we celebrate you.`

// TemplateWriter renders speeches from a text/template with .Winner and .Award
type TemplateWriter struct {
	tmpl *template.Template
}

// NewTemplateWriter parses text, falling back to DefaultTemplate when empty
func NewTemplateWriter(text string) (*TemplateWriter, error) {
	if strings.TrimSpace(text) == "" {
		text = DefaultTemplate
	}
	tmpl, err := template.New("speech").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse speech template: %w", err)
	}
	return &TemplateWriter{tmpl: tmpl}, nil
}

func (w *TemplateWriter) Write(ctx context.Context, winnerName, awardName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	winnerName = strings.TrimSpace(winnerName)
	awardName = strings.TrimSpace(awardName)
	if winnerName == "" || awardName == "" {
		return "", ErrEmptyInput
	}

	var buf bytes.Buffer
	err := w.tmpl.Execute(&buf, struct{ Winner, Award string }{winnerName, awardName})
	if err != nil {
		return "", fmt.Errorf("failed to render speech: %w", err)
	}
	return buf.String(), nil
}
