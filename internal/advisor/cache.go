package advisor

import (
	"sort"
	"strings"

	"github.com/technokami/adept/internal/ai"
)

// Domain is the semantic partition within which a cache key is unique.
type Domain string

const (
	// DomainAnalysis holds profile analysis responses.
	DomainAnalysis Domain = "analysis"
	// DomainMarketPulse holds job-market analysis responses.
	DomainMarketPulse Domain = "market-pulse"
)

const keySeparator = "-"

// Cache memoizes completed responses per domain for the lifetime of a user
// session. There is no eviction; the caller clears a domain when its source
// inputs change. The cache is not safe for concurrent use: one advisor
// session owns one cache and issues one operation at a time.
type Cache struct {
	entries map[Domain]map[string]*ai.Response
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Domain]map[string]*ai.Response)}
}

func (c *Cache) Get(domain Domain, key string) (*ai.Response, bool) {
	if c == nil {
		return nil, false
	}
	resp, ok := c.entries[domain][key]
	return resp, ok
}

func (c *Cache) Put(domain Domain, key string, value *ai.Response) {
	if c == nil || value == nil {
		return
	}
	if c.entries[domain] == nil {
		c.entries[domain] = make(map[string]*ai.Response)
	}
	c.entries[domain][key] = value
}

// Clear drops every entry in the given domain.
func (c *Cache) Clear(domain Domain) {
	if c == nil {
		return
	}
	delete(c.entries, domain)
}

// AnalysisKey builds the canonical cache key for a profile analysis: the
// target role followed by the sorted, de-duplicated skills. Skill order never
// affects the key.
func AnalysisKey(role string, skills []string) string {
	seen := make(map[string]struct{}, len(skills))
	unique := make([]string, 0, len(skills))
	for _, skill := range skills {
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		unique = append(unique, skill)
	}
	sort.Strings(unique)

	parts := append([]string{role}, unique...)
	return strings.Join(parts, keySeparator)
}

// MarketKey builds the cache key for a market analysis. Titles are compared
// byte-for-byte: two titles differing only in case are distinct entries.
func MarketKey(jobTitle string) string {
	return jobTitle
}
