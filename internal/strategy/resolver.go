package strategy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/averill/quill/internal/logger"
)

// Resolver resolves command names to strategies. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	table map[string]Strategy
}

// NewResolver builds a Resolver from the default table plus overrides
// (command name to strategy name, typically from the [commands] config
// section). Overrides naming an unknown strategy are skipped with a warning.
func NewResolver(overrides map[string]string) *Resolver {
	table := make(map[string]Strategy, len(defaultTable)+len(overrides))
	for cmd, s := range defaultTable {
		table[cmd] = s
	}
	for cmd, name := range overrides {
		s, ok := Parse(name)
		if !ok {
			logger.WarnTagf("strategy", "ignoring override %q: unknown strategy %q", cmd, name)
			continue
		}
		table[normalize(cmd)] = s
	}
	return &Resolver{table: table}
}

// Resolve maps a command to its strategy. Total: unmapped commands resolve
// to Replace.
func (r *Resolver) Resolve(command string) Strategy {
	cmd := normalize(command)
	if s, ok := r.table[cmd]; ok {
		return s
	}
	if cmd != "" {
		if nearest, ok := r.Nearest(cmd); ok {
			logger.WarnTagf("strategy", "unknown command %q (closest known: %q), defaulting to replace", command, nearest)
		}
	}
	return Replace
}

// Known returns the sorted command vocabulary.
func (r *Resolver) Known() []string {
	cmds := make([]string, 0, len(r.table))
	for cmd := range r.table {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Nearest returns the known command with the smallest edit distance to
// command, for diagnostics when an unmapped command arrives.
func (r *Resolver) Nearest(command string) (string, bool) {
	cmd := normalize(command)
	if cmd == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, known := range r.Known() {
		d := levenshtein.ComputeDistance(cmd, known)
		if bestDist == -1 || d < bestDist {
			best, bestDist = known, d
		}
	}
	return best, best != ""
}

func normalize(command string) string {
	return strings.ToLower(strings.TrimSpace(command))
}
