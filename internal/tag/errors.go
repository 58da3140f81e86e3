package tag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TagParseError is returned when none of the accepted grammars match a
// tag, carrying every grammar the parser attempted so the caller can show
// the user why.
type TagParseError struct {
	Raw      string
	Attempts []string
}

func (e *TagParseError) Error() string {
	return fmt.Sprintf("tag %q does not match any accepted grammar (tried: %s)", e.Raw, strings.Join(e.Attempts, ", "))
}

// JSON renders the error as a structured diagnostic object.
func (e *TagParseError) JSON() ([]byte, error) {
	type wire struct {
		Raw      string   `json:"raw"`
		Attempts []string `json:"attempts"`
	}
	return json.MarshalIndent(wire{Raw: e.Raw, Attempts: e.Attempts}, "", "  ")
}
