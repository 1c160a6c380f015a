package service

import (
	"sort"
)

// OptOutFilter tracks which configured opt-out emails have been seen.
// Consumption is a flag, so evaluating an email twice is harmless.
type OptOutFilter struct {
	emails   map[string]struct{}
	consumed map[string]struct{}
}

func NewOptOutFilter(emails []string) *OptOutFilter {
	f := &OptOutFilter{
		emails:   make(map[string]struct{}, len(emails)),
		consumed: make(map[string]struct{}),
	}
	for _, email := range emails {
		f.emails[email] = struct{}{}
	}
	return f
}

// Evaluate reports whether email opted out, marking it consumed if so.
func (f *OptOutFilter) Evaluate(email string) bool {
	if _, ok := f.emails[email]; !ok {
		return false
	}
	f.consumed[email] = struct{}{}
	return true
}

// Unconsumed returns the configured emails never matched, sorted.
func (f *OptOutFilter) Unconsumed() []string {
	var out []string
	for email := range f.emails {
		if _, ok := f.consumed[email]; !ok {
			out = append(out, email)
		}
	}
	sort.Strings(out)
	return out
}
