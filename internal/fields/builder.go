// Package fields converts the aspect constraints a user still has to fill in
// into UI-agnostic field descriptors.
package fields

import (
	"fmt"

	"relist/engine/internal/domain"
)

const (
	helpRequired    = "Required by marketplace"
	helpRecommended = "Recommended for better visibility"
)

// CreateDynamicFields builds one field per remaining aspect of the selected
// category. Auto-detected aspects are skipped, as are purely optional ones;
// output order follows the schema's own ordering.
func CreateDynamicFields(aspects []domain.AspectConstraint, autoDetected domain.AutoDetectedAspects) []domain.DynamicField {
	dynamicFields := make([]domain.DynamicField, 0, len(aspects))

	for _, aspect := range aspects {
		if _, ok := autoDetected[aspect.Name]; ok {
			continue
		}
		if aspect.Usage == domain.UsageOptional && !aspect.Required {
			continue
		}

		field := domain.DynamicField{
			Name:     aspect.Name,
			Label:    aspect.Name,
			Type:     fieldType(aspect),
			Required: aspect.Required,
			HelpText: helpRecommended,
		}
		if aspect.Usage == domain.UsageRequired {
			field.HelpText = helpRequired
		}

		switch field.Type {
		case domain.FieldTypeSelect, domain.FieldTypeMultiSelect:
			field.Options = aspect.AllowedValues
		default:
			field.Placeholder = fmt.Sprintf("Enter %s", aspect.Name)
		}

		dynamicFields = append(dynamicFields, field)
	}

	return dynamicFields
}

func fieldType(aspect domain.AspectConstraint) domain.FieldType {
	switch {
	case len(aspect.AllowedValues) > 0 && aspect.Cardinality == domain.CardinalityMulti:
		return domain.FieldTypeMultiSelect
	case len(aspect.AllowedValues) > 0:
		return domain.FieldTypeSelect
	case aspect.DataType == domain.DataTypeNumber:
		return domain.FieldTypeNumber
	default:
		return domain.FieldTypeText
	}
}
