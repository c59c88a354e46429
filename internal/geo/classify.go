// Package geo classifies country and region names into continents.
package geo

import (
	"github.com/biter777/countries"

	"github.com/sells-group/emissions-cli/internal/model"
)

// Resolver maps a country name to its ISO 3166-1 alpha-2 code.
type Resolver interface {
	Alpha2(name string) (string, bool)
}

// ISOResolver resolves names with the biter777/countries name index.
type ISOResolver struct{}

// Alpha2 returns the alpha-2 code for name, or false if the name is not a known country.
func (ISOResolver) Alpha2(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	code := countries.ByName(name)
	if code == countries.Unknown || !code.IsValid() {
		return "", false
	}
	return code.Alpha2(), true
}

// Classifier resolves names to continents in two stages: an exact-match
// override table, then ISO name → alpha-2 → continent code → label.
// A Classifier is immutable after New and safe to share.
type Classifier struct {
	overrides  map[string]model.Continent
	resolver   Resolver
	continents map[string]string
	labels     map[string]model.Continent
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithOverrides merges extra override entries over the defaults.
func WithOverrides(extra map[string]model.Continent) Option {
	return func(c *Classifier) {
		for name, cont := range extra {
			c.overrides[name] = cont
		}
	}
}

// WithResolver replaces the ISO name resolver.
func WithResolver(r Resolver) Option {
	return func(c *Classifier) {
		c.resolver = r
	}
}

// New builds a Classifier from the default tables plus opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		overrides:  DefaultOverrides(),
		resolver:   ISOResolver{},
		continents: DefaultCountryContinents(),
		labels:     DefaultContinentLabels(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the continent for name. It never fails: any miss yields model.Other.
func (c *Classifier) Classify(name string) model.Continent {
	if cont, ok := c.overrides[name]; ok {
		return cont
	}
	return c.lookup(name)
}

// lookup is the ISO fallback stage.
func (c *Classifier) lookup(name string) model.Continent {
	alpha2, ok := c.resolver.Alpha2(name)
	if !ok {
		return model.Other
	}
	code, ok := c.continents[alpha2]
	if !ok {
		return model.Other
	}
	label, ok := c.labels[code]
	if !ok {
		return model.Other
	}
	return label
}

// Source reports which stage classified name: "override", "iso", or "none".
func (c *Classifier) Source(name string) string {
	if _, ok := c.overrides[name]; ok {
		return "override"
	}
	if c.lookup(name) != model.Other {
		return "iso"
	}
	return "none"
}
