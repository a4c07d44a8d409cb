package fhir

import (
	"errors"
	"testing"
)

func TestParseBundle_Basic(t *testing.T) {
	data := []byte(`{
		"resourceType": "Bundle",
		"id": "b-1",
		"type": "collection",
		"timestamp": "2024-03-01T10:00:00+05:30",
		"meta": {"profile": ["https://nrces.in/ndhm/fhir/r4/StructureDefinition/ClaimBundle"]},
		"entry": [
			{"fullUrl": "urn:uuid:1", "resource": {"resourceType": "Claim", "id": "c-1", "status": "active"}},
			{"fullUrl": "urn:uuid:2", "resource": {"resourceType": "Patient", "id": "p-1"}}
		]
	}`)

	b, err := ParseBundle(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "b-1" {
		t.Errorf("expected id b-1, got %s", b.ID)
	}
	if b.Type != "collection" {
		t.Errorf("expected type collection, got %s", b.Type)
	}
	if len(b.Entry) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b.Entry))
	}
	if len(b.Profiles()) != 1 || b.Profiles()[0] != ClaimBundleURL {
		t.Errorf("unexpected bundle profiles: %v", b.Profiles())
	}

	main := b.MainResource()
	if main == nil {
		t.Fatal("expected main resource")
	}
	claim, ok := main.(*Claim)
	if !ok {
		t.Fatalf("expected *Claim, got %T", main)
	}
	if claim.ID != "c-1" || claim.Status != "active" {
		t.Errorf("unexpected claim base: %+v", claim.DomainResource)
	}

	if got := len(b.Resources()); got != 2 {
		t.Errorf("expected 2 resources, got %d", got)
	}
	if p := b.FindResource(TypePatient); p == nil || p.Base().ID != "p-1" {
		t.Errorf("expected to find patient p-1, got %v", p)
	}
}

func TestParseBundle_NotJSON(t *testing.T) {
	_, err := ParseBundle([]byte("not json"))
	if !errors.Is(err, ErrNotJSONObject) {
		t.Errorf("expected ErrNotJSONObject, got %v", err)
	}

	_, err = ParseBundle([]byte(`[1,2,3]`))
	if !errors.Is(err, ErrNotJSONObject) {
		t.Errorf("expected ErrNotJSONObject for array, got %v", err)
	}

	_, err = ParseBundle([]byte(`null`))
	if !errors.Is(err, ErrNotJSONObject) {
		t.Errorf("expected ErrNotJSONObject for null, got %v", err)
	}
}

func TestParseBundle_WrongShapedFieldsDropped(t *testing.T) {
	data := []byte(`{
		"resourceType": "Bundle",
		"id": 42,
		"type": "collection",
		"meta": "broken",
		"entry": [{"resource": {"resourceType": "Claim"}}]
	}`)

	b, err := ParseBundle(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != "" {
		t.Errorf("expected wrong-typed id to be dropped, got %q", b.ID)
	}
	if b.Type != "collection" {
		t.Errorf("expected type to survive, got %q", b.Type)
	}
	if b.Meta != nil {
		t.Errorf("expected meta to be dropped, got %+v", b.Meta)
	}
	if b.MainResource() == nil {
		t.Error("expected main resource to survive")
	}
}

func TestBundle_MainResource_Empty(t *testing.T) {
	cases := map[string]string{
		"no entries":      `{"resourceType":"Bundle"}`,
		"empty entries":   `{"resourceType":"Bundle","entry":[]}`,
		"entry no res":    `{"resourceType":"Bundle","entry":[{"fullUrl":"x"}]}`,
		"entry null res":  `{"resourceType":"Bundle","entry":[{"resource":null}]}`,
		"entry array res": `{"resourceType":"Bundle","entry":[{"resource":[1]}]}`,
	}
	for name, data := range cases {
		b, err := ParseBundle([]byte(data))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if r := b.MainResource(); r != nil {
			t.Errorf("%s: expected nil main resource, got %T", name, r)
		}
	}
}

func TestBundle_NilSafe(t *testing.T) {
	var b *Bundle
	if b.MainResource() != nil {
		t.Error("expected nil main resource on nil bundle")
	}
	if b.Resources() != nil {
		t.Error("expected nil resources on nil bundle")
	}
	if b.Profiles() != nil {
		t.Error("expected nil profiles on nil bundle")
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference("Patient", "123"); got != "Patient/123" {
		t.Errorf("expected Patient/123, got %s", got)
	}
}
