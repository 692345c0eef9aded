package dataset

import (
	"fmt"
	"sort"
)

// SchemaVersion identifies the current frozen-schema layout. Bump on any
// change to the canonical feature list or encoding rules.
const SchemaVersion = 1

// Schema is the frozen train/serve contract: the ordered feature columns,
// the label column, and the category label→code mapping assigned at training
// time. It is persisted inside the model artifact and never re-derived at
// serving time.
type Schema struct {
	Version      int            `json:"version"`
	FeatureNames []string       `json:"feature_names"`
	LabelName    string         `json:"label_name"`
	Categories   map[string]int `json:"categories"`
}

// NewSchema builds a schema from the distinct category labels observed
// during feature building. Codes are assigned by lexicographic label order,
// so the same label set always yields the same mapping.
func NewSchema(labels []string) Schema {
	distinct := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		distinct[l] = struct{}{}
	}
	sorted := make([]string, 0, len(distinct))
	for l := range distinct {
		sorted = append(sorted, l)
	}
	sort.Strings(sorted)

	categories := make(map[string]int, len(sorted))
	for code, l := range sorted {
		categories[l] = code
	}
	return Schema{
		Version:      SchemaVersion,
		FeatureNames: FeatureNames(),
		LabelName:    ColumnLabel,
		Categories:   categories,
	}
}

// EncodeCategory maps a category label to its training-time code. Labels
// never seen during training are rejected, not defaulted.
func (s Schema) EncodeCategory(label string) (int, error) {
	code, ok := s.Categories[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}
	return code, nil
}

// Validate checks that the given column set covers every feature the schema
// requires. Extra columns are tolerated; missing ones are an error naming
// each absent column.
func (s Schema) Validate(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, name := range s.FeatureNames {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %v", ErrSchemaMismatch, missing)
	}
	return nil
}

// Matches reports whether another schema carries the identical contract.
func (s Schema) Matches(other Schema) bool {
	if s.Version != other.Version || s.LabelName != other.LabelName {
		return false
	}
	if len(s.FeatureNames) != len(other.FeatureNames) {
		return false
	}
	for i, name := range s.FeatureNames {
		if other.FeatureNames[i] != name {
			return false
		}
	}
	if len(s.Categories) != len(other.Categories) {
		return false
	}
	for label, code := range s.Categories {
		if other.Categories[label] != code {
			return false
		}
	}
	return true
}
