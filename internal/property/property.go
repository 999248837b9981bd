// Package property holds the domain types exchanged with the SecureAPI service:
// managed properties and their monthly revenue summaries.
package property

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedList is returned when a fetched property list violates its invariants.
var ErrMalformedList = errors.New("malformed property list")

// Property is a managed rental unit.
type Property struct {
	ID   string `json:"id"   yaml:"id"   validate:"required"`
	Name string `json:"name" yaml:"name"`
	// Timezone is carried through for display only.
	Timezone string `json:"timezone" yaml:"timezone"`
}

// ListResponse is the property list envelope. The service has shipped both a
// "data" and an "items" field for the same payload, so both are accepted.
type ListResponse struct {
	Data  []Property `json:"data,omitempty"`
	Items []Property `json:"items,omitempty"`
}

// Properties returns the list in received order. Data wins whenever it was
// present, even if empty; Items is used only when Data is absent or null.
// The result is never nil.
func (r *ListResponse) Properties() []Property {
	if r == nil {
		return []Property{}
	}
	if r.Data != nil {
		return r.Data
	}
	if r.Items != nil {
		return r.Items
	}
	return []Property{}
}

type propertyList struct {
	Properties []Property `validate:"unique=ID,dive"`
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use.
var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateList checks that every property has an ID and that IDs are unique.
func ValidateList(props []Property) error {
	if err := getValidator().Struct(propertyList{Properties: props}); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedList, err)
	}
	return nil
}

// IndexOf returns the position of id in props, or -1.
func IndexOf(props []Property, id string) int {
	for i, p := range props {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the property with the given id.
func Find(props []Property, id string) (Property, bool) {
	if i := IndexOf(props, id); i >= 0 {
		return props[i], true
	}
	return Property{}, false
}
