package vdata

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// unmarshalStrictJSON decodes text into v, rejecting unknown fields and
// trailing content. Field-name matching stays case-insensitive, so both
// "vData" and "VData" spellings are accepted.
func unmarshalStrictJSON(text string, v interface{}) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
