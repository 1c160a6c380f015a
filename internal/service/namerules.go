package service

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// NameRulesFile is the YAML shape of site-specific name fixups.
//
//	unicode_nfc: true
//	collapse_spaces: true
//	by_email:
//	  jdoe@example.com: Jane Doe
//	replace:
//	  "jean-luc picard": "Jean-Luc Picard"
type NameRulesFile struct {
	UnicodeNFC     bool              `yaml:"unicode_nfc"`
	CollapseSpaces bool              `yaml:"collapse_spaces"`
	ByEmail        map[string]string `yaml:"by_email"`
	Replace        map[string]string `yaml:"replace"`
}

// LoadNameRules reads rules from path. An empty path yields no rules.
func LoadNameRules(path string) ([]NameRule, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read name rules: %w", err)
	}

	var file NameRulesFile
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse name rules %s: %w", path, err)
	}

	return file.Rules(), nil
}

// Rules returns the configured rules in application order: normalization
// first, then per-email overrides, then exact-name replacements.
func (f NameRulesFile) Rules() []NameRule {
	var rules []NameRule
	if f.UnicodeNFC {
		rules = append(rules, nfcRule)
	}
	if f.CollapseSpaces {
		rules = append(rules, collapseSpacesRule)
	}
	if len(f.ByEmail) > 0 {
		byEmail := f.ByEmail
		rules = append(rules, func(name, email string) string {
			if fixed, ok := byEmail[email]; ok {
				return fixed
			}
			return name
		})
	}
	if len(f.Replace) > 0 {
		replace := f.Replace
		rules = append(rules, func(name, _ string) string {
			if fixed, ok := replace[name]; ok {
				return fixed
			}
			return name
		})
	}
	return rules
}

func nfcRule(name, _ string) string {
	return norm.NFC.String(name)
}

func collapseSpacesRule(name, _ string) string {
	return strings.Join(strings.Fields(name), " ")
}
