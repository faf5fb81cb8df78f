//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Kind describes an optional personal field or resume section the user can add.
type Kind struct {
	Key   string
	Label string
}

// AdditionalFieldKinds are the optional personal fields, in display order.
var AdditionalFieldKinds = []Kind{
	{Key: "date-of-birth", Label: "Date of birth"},
	{Key: "place-of-birth", Label: "Place of birth"},
	{Key: "drivers-license", Label: "Driver's license"},
	{Key: "gender", Label: "Gender"},
	{Key: "nationality", Label: "Nationality"},
	{Key: "civil-status", Label: "Civil status"},
	{Key: "website", Label: "Website"},
	{Key: "linkedin", Label: "LinkedIn"},
}

// OptionalSectionKinds are the free-text sections, in display order.
var OptionalSectionKinds = []Kind{
	{Key: "profile", Label: "Profile"},
	{Key: "courses", Label: "Courses"},
	{Key: "internships", Label: "Internships"},
	{Key: "extracurricular", Label: "Extracurricular activities"},
	{Key: "references", Label: "References"},
	{Key: "qualifies", Label: "Qualifies"},
	{Key: "certificates", Label: "Certificates"},
	{Key: "achievements", Label: "Achievements"},
	{Key: "signature", Label: "Signature"},
	{Key: "footer", Label: "Footer"},
}

// LookupKind finds key in kinds.
func LookupKind(kinds []Kind, key string) (Kind, bool) {
	for _, k := range kinds {
		if k.Key == key {
			return k, true
		}
	}
	return Kind{}, false
}

// SetAdditionalField stores the value of an optional personal field.
func (d *Document) SetAdditionalField(kind, value string) error {
	if _, ok := LookupKind(AdditionalFieldKinds, kind); !ok {
		return fmt.Errorf("%w: additionalFields.%s", ErrUnknownField, kind)
	}
	if d.AdditionalFields == nil {
		d.AdditionalFields = make(map[string]string)
	}
	d.AdditionalFields[kind] = value
	return nil
}

// RemoveAdditionalField drops an optional personal field. Absent kinds are a no-op.
func (d *Document) RemoveAdditionalField(kind string) {
	delete(d.AdditionalFields, kind)
}

// SetOptionalSection stores the free text of an optional section.
func (d *Document) SetOptionalSection(kind, text string) error {
	if _, ok := LookupKind(OptionalSectionKinds, kind); !ok {
		return fmt.Errorf("%w: optionalSections.%s", ErrUnknownField, kind)
	}
	if d.OptionalSections == nil {
		d.OptionalSections = make(map[string]string)
	}
	d.OptionalSections[kind] = text
	return nil
}

// RemoveOptionalSection drops an optional section. Absent kinds are a no-op.
func (d *Document) RemoveOptionalSection(kind string) {
	delete(d.OptionalSections, kind)
}
