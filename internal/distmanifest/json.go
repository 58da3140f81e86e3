package distmanifest

import "encoding/json"

// Marshal writes the manifest in its canonical indented form.
func Marshal(m *Manifest) ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// Parse decodes a manifest from any schema version within the supported
// compatibility window, filling defaults for fields an older writer left
// out.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := CheckCompat(&m); err != nil {
		return nil, err
	}
	ApplyDefaults(&m)
	return &m, nil
}
