package response

import (
	"regexp"
	"sort"
	"strings"
)

// defaultReasoningTags are the historical tag names models have wrapped
// chain-of-thought output in. All of them must keep being recognized.
var defaultReasoningTags = []string{"think", "thinking", "reasoning", "thinkpad"}

var (
	// finalOutputRe matches the explicit final-answer envelope.
	finalOutputRe = regexp.MustCompile(`(?is)<final_output\s*>(.*?)</final_output\s*>`)
	// genericTagRe matches tag-like markup while leaving inner text alone.
	// The leading letter requirement keeps prose like "a < b > c" intact.
	genericTagRe = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)
	// newlineRunRe matches runs of three or more newlines.
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// reasoningExtractor removes reasoning blocks for a set of tag aliases. One
// generic matcher consumes the alias list, so extending the set is a config
// change, not new code.
type reasoningExtractor struct {
	patterns []*regexp.Regexp
}

// newReasoningExtractor compiles one pattern per alias. Blank and duplicate
// aliases are dropped.
func newReasoningExtractor(aliases []string) *reasoningExtractor {
	seen := make(map[string]struct{}, len(aliases))
	patterns := make([]*regexp.Regexp, 0, len(aliases))
	for _, alias := range aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			continue
		}
		if _, dup := seen[alias]; dup {
			continue
		}
		seen[alias] = struct{}{}
		quoted := regexp.QuoteMeta(alias)
		patterns = append(patterns, regexp.MustCompile(`(?is)<`+quoted+`\s*>(.*?)</`+quoted+`\s*>`))
	}
	return &reasoningExtractor{patterns: patterns}
}

type tagSpan struct {
	start, end int
	inner      string
}

// extract returns the inner text of every reasoning block in document order
// and the input with the matched spans removed. A block nested inside an
// already removed span is skipped, not extracted twice.
func (x *reasoningExtractor) extract(s string) ([]string, string) {
	var spans []tagSpan
	for _, re := range x.patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
			spans = append(spans, tagSpan{start: loc[0], end: loc[1], inner: s[loc[2]:loc[3]]})
		}
	}
	if len(spans) == 0 {
		return nil, s
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	blocks := make([]string, 0, len(spans))
	var rest strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.start < last {
			continue
		}
		blocks = append(blocks, strings.TrimSpace(sp.inner))
		rest.WriteString(s[last:sp.start])
		last = sp.end
	}
	rest.WriteString(s[last:])
	return blocks, rest.String()
}

// sweepTags strips residual tag-like markup and collapses excess blank
// lines left behind by the removal.
func sweepTags(s string) string {
	s = genericTagRe.ReplaceAllString(s, "")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// extractFinalOutput returns the trimmed inner text of the first
// final-answer envelope, if one is present.
func extractFinalOutput(s string) (string, bool) {
	m := finalOutputRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
