package fhir

import (
	"encoding/json"
	"reflect"
	"strings"
)

// DecodeResource turns one raw entry resource into its union variant. It
// returns nil only when raw is not a JSON object. Fields whose JSON shape does
// not match the expected type are dropped instead of failing the resource.
func DecodeResource(raw json.RawMessage) Resource {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil
	}

	var rt string
	if v, ok := obj["resourceType"]; ok {
		_ = json.Unmarshal(v, &rt)
	}

	r := newResource(rt)
	if u, ok := r.(*Unknown); ok {
		fillStruct(reflect.ValueOf(&u.DomainResource).Elem(), obj)
		var fields map[string]any
		_ = json.Unmarshal(raw, &fields)
		u.Fields = fields
		u.Type = rt
		return u
	}

	decodeLenient(raw, obj, r)
	r.Base().Type = rt
	return r
}

func newResource(rt string) Resource {
	switch rt {
	case TypePatient:
		return &Patient{}
	case TypeOrganization:
		return &Organization{}
	case TypePractitioner:
		return &Practitioner{}
	case TypeCoverage:
		return &Coverage{}
	case TypeClaim:
		return &Claim{}
	case TypeClaimResponse:
		return &ClaimResponse{}
	case TypeCoverageEligibilityRequest:
		return &CoverageEligibilityRequest{}
	case TypeCoverageEligibilityResponse:
		return &CoverageEligibilityResponse{}
	case TypeInsurancePlan:
		return &InsurancePlan{}
	case TypeTask:
		return &Task{}
	case TypeCommunication:
		return &Communication{}
	default:
		return &Unknown{}
	}
}

// decodeLenient tries a strict unmarshal first and falls back to a
// field-by-field fill when any field has the wrong shape.
func decodeLenient(raw json.RawMessage, obj map[string]json.RawMessage, v any) {
	if err := json.Unmarshal(raw, v); err == nil {
		return
	}
	rv := reflect.ValueOf(v).Elem()
	rv.Set(reflect.Zero(rv.Type()))
	fillStruct(rv, obj)
}

func fillStruct(rv reflect.Value, obj map[string]json.RawMessage) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			fillStruct(rv.Field(i), obj)
			continue
		}
		name := jsonName(f)
		if name == "-" {
			continue
		}
		raw, ok := obj[name]
		if !ok {
			continue
		}
		setLenient(rv.Field(i), raw)
	}
}

func setLenient(fv reflect.Value, raw json.RawMessage) {
	target := reflect.New(fv.Type())
	if err := json.Unmarshal(raw, target.Interface()); err == nil {
		fv.Set(target.Elem())
		return
	}

	switch fv.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil {
			fillStruct(fv, obj)
		}
	case reflect.Pointer:
		if fv.Type().Elem().Kind() != reflect.Struct {
			return
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) != nil {
			return
		}
		p := reflect.New(fv.Type().Elem())
		fillStruct(p.Elem(), obj)
		fv.Set(p)
	case reflect.Slice:
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return
		}
		s := reflect.MakeSlice(fv.Type(), 0, len(items))
		for _, item := range items {
			ev := reflect.New(fv.Type().Elem()).Elem()
			setLenient(ev, item)
			s = reflect.Append(s, ev)
		}
		fv.Set(s)
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// TypeCodes returns the codes carried by the resource's "type" element, which
// is a single CodeableConcept on some kinds and a list on others.
func TypeCodes(r Resource) []string {
	var concepts []CodeableConcept
	switch v := r.(type) {
	case *Claim:
		if v.Type != nil {
			concepts = append(concepts, *v.Type)
		}
	case *ClaimResponse:
		if v.Type != nil {
			concepts = append(concepts, *v.Type)
		}
	case *Coverage:
		if v.Type != nil {
			concepts = append(concepts, *v.Type)
		}
	case *Organization:
		concepts = v.Type
	case *InsurancePlan:
		concepts = v.Type
	case *Unknown:
		concepts = conceptsFromAny(v.Fields["type"])
	}

	var codes []string
	for _, cc := range concepts {
		for _, c := range cc.Coding {
			if c.Code != "" {
				codes = append(codes, c.Code)
			}
		}
	}
	return codes
}

func conceptsFromAny(v any) []CodeableConcept {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var list []CodeableConcept
	if json.Unmarshal(data, &list) == nil {
		return list
	}
	var one CodeableConcept
	if json.Unmarshal(data, &one) == nil {
		return []CodeableConcept{one}
	}
	return nil
}

// Profiles returns the resource's meta.profile list.
func Profiles(r Resource) []string {
	if r == nil {
		return nil
	}
	if m := r.Base().Meta; m != nil {
		return m.Profile
	}
	return nil
}
