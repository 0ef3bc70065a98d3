// Package policy decides which candidate facts are too sensitive to store.
// A fact is rejected when its category matches a deny pattern or its content
// matches a pattern for credentials, card or account numbers, national IDs,
// phone numbers, or street addresses.
package policy

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Violation identifies the rule a candidate fact breached.
type Violation struct {
	Rule    string
	Message string
}

type contentRule struct {
	name string
	re   *regexp.Regexp
}

// Policy enforces the sensitive-content rules.
type Policy struct {
	denyCategories []string
	rules          []contentRule
}

// DefaultDenyCategories are the category names that are never admitted.
// Entries are glob patterns matched case-insensitively.
var DefaultDenyCategories = []string{
	"health",
	"medical",
	"financial",
	"credential",
	"auth",
	"address_exact",
}

// The corpus this system grew up on is Japanese, so the keyword rules carry
// both Japanese and English terms.
var contentRules = []contentRule{
	{"password", regexp.MustCompile(`(?i)password|passphrase|passcode|\bpin\b|パスワード|暗証番号`)},
	{"card_or_account", regexp.MustCompile(`(?i)credit card|card number|bank account|クレジット|カード番号|口座番号|(?:\d[ -]?){15}\d`)},
	{"national_id", regexp.MustCompile(`(?i)national id|\bssn\b|social security|マイナンバー|保険証|免許証`)},
	{"phone", regexp.MustCompile(`(?i)phone number|電話番号|\+\d{9,14}|\b0\d{1,4}-\d{1,4}-\d{3,4}\b`)},
	{"address", regexp.MustCompile(`(住所|(?i:address)).*[0-9０-９]`)},
}

// New creates a Policy with the given category deny patterns. Nil or empty
// uses DefaultDenyCategories.
func New(denyCategories []string) *Policy {
	if len(denyCategories) == 0 {
		denyCategories = DefaultDenyCategories
	}
	return &Policy{
		denyCategories: denyCategories,
		rules:          contentRules,
	}
}

// Default returns a Policy with the built-in deny list.
func Default() *Policy {
	return New(nil)
}

// Check reports whether a candidate fact breaches the policy. A nil result
// means the fact may be stored.
func (p *Policy) Check(category, content string) *Violation {
	lowered := strings.ToLower(strings.TrimSpace(category))
	for _, pattern := range p.denyCategories {
		match, err := doublestar.Match(strings.ToLower(pattern), lowered)
		if err == nil && match {
			return &Violation{Rule: "category", Message: "category is deny-listed: " + category}
		}
	}

	for _, rule := range p.rules {
		if rule.re.MatchString(content) {
			return &Violation{Rule: rule.name, Message: "content matches sensitive pattern: " + rule.name}
		}
	}

	return nil
}
