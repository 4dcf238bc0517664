package validation

import "strings"

// DefaultSpamKeywords are rejected anywhere in a contact subject or message.
var DefaultSpamKeywords = []string{"viagra", "cialis", "casino", "lottery", "prize"}

// DefaultDisposableDomains are providers of throwaway addresses.
var DefaultDisposableDomains = []string{"tempmail.com", "throwaway.email", "10minutemail.com", "guerrillamail.com"}

// KeywordDenylist matches case-insensitive substrings, including matches in
// the middle of a word.
type KeywordDenylist struct {
	keywords []string
}

func NewKeywordDenylist(keywords ...string) *KeywordDenylist {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &KeywordDenylist{keywords: lowered}
}

// Match returns the first keyword contained in text.
func (d *KeywordDenylist) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, k := range d.keywords {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

// DomainDenylist matches whole email domains.
type DomainDenylist struct {
	domains map[string]struct{}
}

func NewDomainDenylist(domains ...string) *DomainDenylist {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return &DomainDenylist{domains: set}
}

// Contains reports whether the domain of email is denylisted.
func (d *DomainDenylist) Contains(email string) bool {
	_, ok := d.domains[EmailDomain(email)]
	return ok
}
