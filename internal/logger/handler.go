package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // slog attribute key the tag wrappers attach

// filterHandler wraps a base slog.Handler and drops records according to
// the tag and package filter sets in Config.
type filterHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilterHandler(base slog.Handler, cfg *Config) *filterHandler {
	return &filterHandler{base: base, cfg: cfg}
}

func (h *filterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filterHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	// Package filtering keys off the call site directory name.
	if pkg := callerPackage(r.PC); pkg != "" {
		pkg = strings.ToLower(pkg)
		if _, drop := h.cfg.disabledPkgs[pkg]; drop {
			return nil
		}
		if h.cfg.enabledPkgs != nil {
			if _, keep := h.cfg.enabledPkgs[pkg]; !keep {
				return nil
			}
		}
	}

	tag, tagged := recordTag(r)
	if tagged {
		if _, drop := h.cfg.disabledTags[tag]; drop {
			return nil
		}
		if h.cfg.enabledTags != nil {
			if _, keep := h.cfg.enabledTags[tag]; !keep {
				return nil
			}
		}
	} else if h.cfg.enabledTags != nil {
		// A tag allow-list is active and this record has none.
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *filterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilterHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filterHandler) WithGroup(name string) slog.Handler {
	return newFilterHandler(h.base.WithGroup(name), h.cfg)
}

// callerPackage resolves the immediate directory name of the frame the
// record was created with. Returns "" when no PC was captured.
func callerPackage(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(frame.File))
}

// recordTag extracts the "tag" attribute if present.
func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}
