package assistant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/averill/quill/internal/event"
	"github.com/averill/quill/internal/logger"
	"github.com/averill/quill/internal/mutate"
	"github.com/averill/quill/internal/provider"
	"github.com/averill/quill/internal/response"
	"github.com/averill/quill/internal/selection"
)

// Dispatch captures the current selection and runs command through the
// provider on its own goroutine. The returned id identifies the request in
// events; any number of dispatches may be in flight at once, each applied
// against the selection captured at its own dispatch time.
func (s *Session) Dispatch(ctx context.Context, command, prompt string, flags mutate.Flags) (string, error) {
	id, req, err := s.register(command, prompt, flags)
	if err != nil {
		return "", err
	}
	s.events.Dispatch(event.TypeRequestStarted, event.RequestStartedData{ID: id, Command: command})

	go func() {
		raw, err := s.prov.Generate(ctx, req)
		if err != nil {
			s.fail(id, err)
			return
		}
		s.deliver(id, raw)
	}()
	return id, nil
}

// Run executes one command synchronously: capture, generate, parse, apply.
func (s *Session) Run(ctx context.Context, command, prompt string, flags mutate.Flags) (response.Parsed, mutate.Result, error) {
	id, req, err := s.register(command, prompt, flags)
	if err != nil {
		return response.Parsed{}, mutate.Result{}, err
	}
	s.events.Dispatch(event.TypeRequestStarted, event.RequestStartedData{ID: id, Command: command})

	raw, err := s.prov.Generate(ctx, req)
	if err != nil {
		s.fail(id, err)
		return response.Parsed{}, mutate.Result{}, fmt.Errorf("generate: %w", err)
	}

	parsed, res, ok := s.deliver(id, raw)
	if !ok {
		return response.Parsed{}, mutate.Result{}, ErrClosed
	}
	return parsed, res, nil
}

// HandleRaw runs a raw model response through the pipeline against the
// selection captured now. Hosts that own their transport feed responses in
// here; Dispatch and Run are the provider-backed variants.
func (s *Session) HandleRaw(command, raw string, flags mutate.Flags) (response.Parsed, mutate.Result, error) {
	if s.isClosed() {
		return response.Parsed{}, mutate.Result{}, ErrClosed
	}
	sel := s.doc.Capture()
	parsed, res := s.applyResponse(uuid.NewString(), command, raw, sel, flags)
	return parsed, res, nil
}

// register captures the request-time state and assigns a request id.
func (s *Session) register(command, prompt string, flags mutate.Flags) (string, provider.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", provider.Request{}, ErrClosed
	}
	if s.prov == nil {
		return "", provider.Request{}, ErrNoProvider
	}

	id := uuid.NewString()
	sel := s.doc.Capture()
	s.pending[id] = pendingRequest{command: command, selection: sel, flags: flags}

	req := provider.Request{
		ID:                   id,
		Command:              command,
		Prompt:               prompt,
		Title:                s.doc.Title(),
		Content:              s.doc.Content(),
		Selection:            sel,
		ReplaceEntireContent: flags.ReplaceEntireContent,
		ReplaceSelection:     flags.ReplaceSelection,
	}
	logger.DebugTagf("assistant", "request %s registered for command %q", id, command)
	return id, req, nil
}

// deliver applies a provider response against the state captured at
// dispatch time. Late deliveries for closed sessions or unknown ids are
// dropped.
func (s *Session) deliver(id, raw string) (response.Parsed, mutate.Result, bool) {
	s.mu.Lock()
	pr, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	closed := s.closed
	s.mu.Unlock()

	if closed || !ok {
		logger.DebugTagf("assistant", "response %s dropped (closed=%v, known=%v)", id, closed, ok)
		return response.Parsed{}, mutate.Result{}, false
	}

	parsed, res := s.applyResponse(id, pr.command, raw, pr.selection, pr.flags)
	return parsed, res, true
}

// fail abandons a pending request and surfaces the error upward.
func (s *Session) fail(id string, err error) {
	s.mu.Lock()
	delete(s.pending, id)
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}
	logger.WarnTagf("assistant", "request %s failed: %v", id, err)
	s.events.Dispatch(event.TypeRequestFinished, event.RequestFinishedData{ID: id, Err: err})
}

// applyResponse is the pipeline tail: parse, apply, record, announce.
func (s *Session) applyResponse(id, command, raw string, sel selection.Info, flags mutate.Flags) (response.Parsed, mutate.Result) {
	parsed := s.parser.Parse(raw, command, sel)
	if parsed.Diagnostic {
		s.events.Dispatch(event.TypeParseFallback, event.ParseFallbackData{Reason: "no usable content in response"})
	}

	res := mutate.Apply(parsed, sel, s.doc.Content(), command, flags)

	if res.Applied {
		s.doc.ApplyMutation(res)
		s.hist.Push(s.doc.Snapshot())
		s.events.Dispatch(event.TypeDocumentMutated, event.DocumentMutatedData{
			Strategy: parsed.Strategy.String(),
			Caret:    res.Caret,
		})
	}
	if len(res.Suggestions) > 0 {
		s.mu.Lock()
		s.suggestions = append(s.suggestions, res.Suggestions...)
		s.mu.Unlock()
		s.events.Dispatch(event.TypeSuggestionsReady, event.SuggestionsReadyData{
			RequestID:   id,
			Suggestions: res.Suggestions,
		})
	}
	s.events.Dispatch(event.TypeRequestFinished, event.RequestFinishedData{
		ID:       id,
		Applied:  res.Applied,
		Thinking: parsed.Thinking,
	})
	return parsed, res
}
