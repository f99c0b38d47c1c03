// Package bypass decides whether a hostname should skip tenant resolution
// entirely: local development hosts, ephemeral preview deployments, and
// private-network addresses have no registered domain, so the gateway
// serves them with statically configured fallback values instead of asking
// the registry.
//
// The decision is an explicit, ordered rule list rather than inline string
// checks, so new environments are added through configuration:
//
//	m := bypass.NewMatcher(append(bypass.DefaultRules(),
//		bypass.Rule{Kind: bypass.Suffix, Value: ".internal.example.com"},
//	))
//	if m.Match(r.Host) { ... }
package bypass

import (
	"fmt"
	"net"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects the matching strategy of a Rule.
type Kind string

const (
	// Suffix matches hostnames ending with the rule value.
	Suffix Kind = "suffix"
	// Prefix matches hostnames beginning with the rule value.
	Prefix Kind = "prefix"
	// Contains matches hostnames containing the rule value anywhere.
	Contains Kind = "contains"
)

// Rule is a single host-matching predicate.
type Rule struct {
	Kind  Kind   `yaml:"kind"`
	Value string `yaml:"value"`
}

func (r Rule) match(host string) bool {
	switch r.Kind {
	case Suffix:
		return strings.HasSuffix(host, r.Value)
	case Prefix:
		return strings.HasPrefix(host, r.Value)
	case Contains:
		return strings.Contains(host, r.Value)
	default:
		return false
	}
}

// Matcher evaluates an ordered rule list against hostnames.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given rules. The rule slice is
// copied; the matcher is safe for concurrent use.
func NewMatcher(rules []Rule) *Matcher {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Matcher{rules: copied}
}

// Match reports whether the hostname should bypass tenant resolution.
// Any port suffix is stripped before matching, so "localhost:3000" and
// "192.168.1.5:8080" match their portless rules; bracketed IPv6 literals
// like "[::1]:3000" match as "::1".
func (m *Matcher) Match(host string) bool {
	if host == "" {
		return false
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	} else {
		// Bare bracketed IPv6 literals carry no port to split off.
		host = strings.Trim(host, "[]")
	}
	host = strings.ToLower(host)

	for _, rule := range m.rules {
		if rule.match(host) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in bypass rules: localhost, Vercel
// preview deployments, loopback, and RFC 1918 private-network prefixes.
func DefaultRules() []Rule {
	rules := []Rule{
		{Kind: Contains, Value: "localhost"},
		{Kind: Suffix, Value: ".vercel.app"},
		{Kind: Prefix, Value: "127."},
		{Kind: Prefix, Value: "::1"},
		{Kind: Prefix, Value: "10."},
		{Kind: Prefix, Value: "192.168."},
	}
	// 172.16.0.0/12 covers the second octets 16 through 31
	for octet := 16; octet <= 31; octet++ {
		rules = append(rules, Rule{Kind: Prefix, Value: fmt.Sprintf("172.%d.", octet)})
	}
	return rules
}

// LoadRules reads additional bypass rules from a YAML file:
//
//	- kind: suffix
//	  value: .preview.example.com
//	- kind: contains
//	  value: staging
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bypass: read rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("bypass: parse rules file: %w", err)
	}

	for i, rule := range rules {
		switch rule.Kind {
		case Suffix, Prefix, Contains:
		default:
			return nil, fmt.Errorf("bypass: rule %d: unknown kind %q", i, rule.Kind)
		}
		if rule.Value == "" {
			return nil, fmt.Errorf("bypass: rule %d: empty value", i)
		}
	}
	return rules, nil
}
