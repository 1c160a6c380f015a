package service

import (
	"strings"
	"unicode"

	"github.com/templui/resumebook/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameRule rewrites a trimmed display name. Rules must be pure.
type NameRule func(name, email string) string

// NameNormalizer cleans raw "Full Name" answers and flags likely typos.
type NameNormalizer struct {
	rules []NameRule
	diags *Diagnostics
	lower cases.Caser
}

func NewNameNormalizer(diags *Diagnostics, rules ...NameRule) *NameNormalizer {
	return &NameNormalizer{
		rules: rules,
		diags: diags,
		lower: cases.Lower(language.Und),
	}
}

func (n *NameNormalizer) Normalize(raw, email string) string {
	name := strings.TrimSpace(raw)

	for _, rule := range n.rules {
		name = rule(name, email)
	}

	if !strings.ContainsFunc(name, unicode.IsSpace) {
		n.diags.Warn(model.DiagSingleTokenName, name, "name has no space; might need fixup")
	}
	if name == n.lower.String(name) {
		n.diags.Warn(model.DiagLowercaseName, name, "name is all lower case; might need fixup")
	}

	return name
}
