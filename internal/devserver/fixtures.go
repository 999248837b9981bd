// Package devserver serves the SecureAPI property contract from a YAML fixture
// file so the dashboard can be exercised without the real service.
package devserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/propfocus/internal/property"
)

// Envelope names accepted in fixtures.
const (
	EnvelopeData  = "data"
	EnvelopeItems = "items"
	EnvelopeNone  = "none"
)

// DefaultAPIVersion is reported when a fixture sets no api_version.
const DefaultAPIVersion = "1.0.0"

// Fixtures is the content served by the dev server.
type Fixtures struct {
	// Envelope selects the list field name: "data" (default), "items" or "none".
	Envelope       string                    `yaml:"envelope"`
	APIVersion     string                    `yaml:"api_version"`
	FailProperties bool                      `yaml:"fail_properties"`
	Properties     []property.Property       `yaml:"properties"`
	Revenue        []property.RevenueSummary `yaml:"revenue"`
}

// LoadFixtures reads fixtures from a YAML file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures %s: %w", path, err)
	}
	var f Fixtures
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	if err = f.normalize(); err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return &f, nil
}

func (f *Fixtures) normalize() error {
	switch f.Envelope {
	case "":
		f.Envelope = EnvelopeData
	case EnvelopeData, EnvelopeItems, EnvelopeNone:
	default:
		return fmt.Errorf("unknown envelope %q (want data, items or none)", f.Envelope)
	}
	if f.APIVersion == "" {
		f.APIVersion = DefaultAPIVersion
	}
	return nil
}

// listBody wraps the properties in the configured envelope.
func (f *Fixtures) listBody() map[string]any {
	props := f.Properties
	if props == nil {
		props = []property.Property{}
	}
	if f.Envelope == EnvelopeNone {
		return map[string]any{}
	}
	return map[string]any{f.Envelope: props}
}

// revenueFor returns the summary for id and period; an empty period matches
// the first summary listed for the property.
func (f *Fixtures) revenueFor(id, period string) (property.RevenueSummary, bool) {
	for _, r := range f.Revenue {
		if r.PropertyID != id {
			continue
		}
		if period == "" || r.Period == period {
			return r, true
		}
	}
	return property.RevenueSummary{}, false
}
