package registry

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rgdevment/scam-scanner/internal/domain"
)

// Lookup is the read-only view of a scam list.
type Lookup interface {
	ListNumbers() []string
	IsScam(number string) bool
}

var _ Lookup = (*Registry)(nil)

// \v is listed separately because RE2's \s omits vertical tab.
var formatting = regexp.MustCompile(`[\s\v\-()]`)

// Normalize strips whitespace (including vertical tab), hyphens and parentheses.
func Normalize(number string) string {
	return formatting.ReplaceAllString(number, "")
}

type entry struct {
	stored     string
	normalized string
	lowered    string
}

// Registry is an immutable snapshot of known scam numbers.
// It is safe for concurrent use.
type Registry struct {
	entries []entry
}

// New builds a snapshot. Duplicate numbers collapse into one entry.
func New(numbers ...string) *Registry {
	seen := make(map[string]struct{}, len(numbers))
	r := &Registry{entries: make([]entry, 0, len(numbers))}

	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}

		norm := Normalize(n)
		r.entries = append(r.entries, entry{
			stored:     n,
			normalized: norm,
			lowered:    strings.ToLower(norm),
		})
	}

	return r
}

// Default returns a snapshot over the built-in scam list.
func Default() *Registry {
	return New(domain.SeedScamNumbers()...)
}

// ListNumbers returns every stored number in storage form, sorted.
func (r *Registry) ListNumbers() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.stored)
	}
	sort.Strings(out)
	return out
}

// IsScam reports whether number matches a stored scam number.
//
// After normalization a match is either the query containing the stored
// number (case-insensitive) or the query ending with it. A stored number
// embedded anywhere in a longer string therefore matches.
func (r *Registry) IsScam(number string) bool {
	norm := Normalize(number)
	if norm == "" {
		return false
	}
	lowered := strings.ToLower(norm)

	for _, e := range r.entries {
		if e.normalized == "" {
			continue
		}
		if strings.Contains(lowered, e.lowered) || strings.HasSuffix(norm, e.normalized) {
			return true
		}
	}
	return false
}

// ReportNumber accepts a report and discards it. The snapshot never changes;
// durable reports go through the service layer's repository.
func (r *Registry) ReportNumber(number string) {}

// Len returns the number of distinct stored numbers.
func (r *Registry) Len() int {
	return len(r.entries)
}
