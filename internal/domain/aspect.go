package domain

type AspectDataType string

const (
	DataTypeString      AspectDataType = "STRING"
	DataTypeStringArray AspectDataType = "STRING_ARRAY"
	DataTypeNumber      AspectDataType = "NUMBER"
	DataTypeDate        AspectDataType = "DATE"
)

type UsageTier string

const (
	UsageRequired    UsageTier = "REQUIRED"
	UsageRecommended UsageTier = "RECOMMENDED"
	UsageOptional    UsageTier = "OPTIONAL"
)

type Cardinality string

const (
	CardinalitySingle Cardinality = "SINGLE"
	CardinalityMulti  Cardinality = "MULTI"
)

// AspectConstraint describes one structured attribute a category defines for
// its listings. Constraints are scoped to a single category and fetched fresh
// per category id.
type AspectConstraint struct {
	Name          string         `json:"name"`
	DataType      AspectDataType `json:"data_type"`
	Required      bool           `json:"required"`
	Usage         UsageTier      `json:"usage"`
	Cardinality   Cardinality    `json:"cardinality"`
	AllowedValues []string       `json:"allowed_values,omitempty"`
}

// AutoDetectedAspects maps an aspect name to the values extracted from free
// text. Keys are always a subset of the category's constraint names.
type AutoDetectedAspects map[string][]string
