package fhir

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotJSONObject is returned by ParseBundle when the input is not a JSON
// object at all. Anything that is an object parses, however incomplete.
var ErrNotJSONObject = errors.New("bundle is not a JSON object")

// Bundle represents a FHIR Bundle document as received from a payer or
// provider. Entry resources stay raw until asked for.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type,omitempty"`
	Timestamp    string        `json:"timestamp,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
}

// ParseBundle decodes bundle bytes. Top-level fields with the wrong shape are
// dropped; only non-object input is an error.
func ParseBundle(data []byte) (*Bundle, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}
	if obj == nil {
		return nil, ErrNotJSONObject
	}
	b := &Bundle{}
	decodeLenient(data, obj, b)
	return b, nil
}

// MainResource returns the decoded resource of the first entry. All workflow
// classification keys off it. Nil when the bundle has no usable first entry.
func (b *Bundle) MainResource() Resource {
	if b == nil || len(b.Entry) == 0 || len(b.Entry[0].Resource) == 0 {
		return nil
	}
	return DecodeResource(b.Entry[0].Resource)
}

// Resources decodes every entry in order, skipping entries without a
// resource object.
func (b *Bundle) Resources() []Resource {
	if b == nil {
		return nil
	}
	out := make([]Resource, 0, len(b.Entry))
	for _, e := range b.Entry {
		if len(e.Resource) == 0 {
			continue
		}
		if r := DecodeResource(e.Resource); r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Profiles returns the bundle-level meta.profile list.
func (b *Bundle) Profiles() []string {
	if b == nil || b.Meta == nil {
		return nil
	}
	return b.Meta.Profile
}

// FindResource returns the first resource of the given type, or nil.
func (b *Bundle) FindResource(resourceType string) Resource {
	for _, r := range b.Resources() {
		if r.ResourceType() == resourceType {
			return r
		}
	}
	return nil
}

// FormatReference creates a FHIR reference string.
func FormatReference(resourceType, id string) string {
	return fmt.Sprintf("%s/%s", resourceType, id)
}
