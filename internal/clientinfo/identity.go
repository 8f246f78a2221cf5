package clientinfo

// BuildField is one key/value pair of build metadata (commit hash,
// build timestamp). A slice of fields rather than a map so insertion
// order survives serialization.
type BuildField struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Identity is the structured description derived from a node's
// self-reported identification string. Every field other than Raw is
// optional; Implementation is None iff Raw is empty or whitespace-only.
type Identity struct {
	Raw             string         `json:"raw_string" yaml:"raw_string"`
	Implementation  Implementation `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	Version         string         `json:"version,omitempty" yaml:"version,omitempty"`
	Language        string         `json:"language,omitempty" yaml:"language,omitempty"`
	LanguageVersion string         `json:"language_version,omitempty" yaml:"language_version,omitempty"`
	OS              string         `json:"operating_system,omitempty" yaml:"operating_system,omitempty"`
	Architecture    string         `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	BuildMetadata   []BuildField   `json:"build_metadata,omitempty" yaml:"build_metadata,omitempty"`
}

func (id *Identity) addBuildField(key, value string) {
	id.BuildMetadata = append(id.BuildMetadata, BuildField{Key: key, Value: value})
}

// BuildValue looks up a build metadata field by key.
func (id *Identity) BuildValue(key string) (string, bool) {
	for _, field := range id.BuildMetadata {
		if field.Key == key {
			return field.Value, true
		}
	}

	return "", false
}
