package rest

import (
	"net/url"
	"strings"
)

// Params builds a query string whose keys appear in the order they were
// added. The standard library's url.Values sorts keys on Encode, which
// loses the insertion order the API endpoints document for repeated
// parameters, so a small ordered builder is used instead.
type Params struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// Add appends a single key/value pair.
func (p *Params) Add(key, value string) {
	p.pairs = append(p.pairs, pair{key: key, value: value})
}

// AddAll appends one pair per value, preserving value order. Repeated keys
// are how the API expresses list parameters (for example several symbol
// values).
func (p *Params) AddAll(key string, values ...string) {
	for _, v := range values {
		p.Add(key, v)
	}
}

// Len returns the number of accumulated pairs.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Encode renders the accumulated pairs as "?k=v&k2=v2" with URI component
// escaping. It returns the empty string when no pairs were added.
func (p *Params) Encode() string {
	if len(p.pairs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}
