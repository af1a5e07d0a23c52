package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

// SettingsSchema returns a JSON Schema for settings.yaml.
func SettingsSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	sch := r.Reflect(&Settings{})
	sch.Title = "agoricup settings"
	sch.Description = "User settings read from settings.yaml on every install or update decision."
	return sch
}
