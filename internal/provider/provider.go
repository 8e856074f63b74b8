// Package provider defines the seam to the model-invocation collaborator.
// The transport itself lives outside this module; sessions consume the
// interface and tests use the scripted implementation.
package provider

import (
	"context"

	"github.com/averill/quill/internal/selection"
)

// Request carries everything a model call needs to produce a response.
type Request struct {
	ID      string // request id assigned by the session
	Command string // continue, improve, fix, ...
	Prompt  string // free-form user instruction, may be empty

	Title     string
	Content   string
	Selection selection.Info

	// Short-circuit flags the host may set explicitly.
	ReplaceEntireContent bool
	ReplaceSelection     bool
}

// Provider produces raw model text for a request.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
