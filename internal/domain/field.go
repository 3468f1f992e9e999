package domain

type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeNumber      FieldType = "number"
)

// DynamicField is a UI-agnostic descriptor for one aspect the user still has
// to fill in. Fields are derived, never persisted; they are regenerated
// whenever the selected category or the auto-detection output changes.
type DynamicField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"help_text,omitempty"`
}
