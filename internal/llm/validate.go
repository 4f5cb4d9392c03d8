package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonrepair"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches compiled schemas by *Schema. Schemas are package-level
// values, so the cache stays small.
var compiled sync.Map

// validateResponse checks raw against schema and returns the JSON to hand
// to the caller. Output that does not parse gets one pass through
// jsonrepair, since models wrap JSON in code fences or drop a closing
// brace; the repaired text is returned when it validates.
func validateResponse(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	doc, raw, err := parseLenient(raw)
	if err != nil {
		return nil, err
	}

	s, err := compile(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := s.Validate(doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: %w", schema.Name, err)}
	}
	return raw, nil
}

// parseLenient decodes raw, repairing it first if needed. It returns the
// decoded document and the text it came from.
func parseLenient(raw json.RawMessage) (any, json.RawMessage, error) {
	var doc any
	err := json.Unmarshal(raw, &doc)
	if err == nil {
		return doc, raw, nil
	}
	fixed, ok := repairJSON(raw)
	if !ok {
		return nil, nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := json.Unmarshal(fixed, &doc); err != nil {
		return nil, nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON after repair: %w", err)}
	}
	return doc, fixed, nil
}

func repairJSON(raw json.RawMessage) (json.RawMessage, bool) {
	s := strings.TrimSpace(string(raw))
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	if s == "" {
		return nil, false
	}
	fixed, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, false
	}
	return json.RawMessage(fixed), true
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed
	// slices, so round-trip the definition.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	c := jsonschema.NewCompiler()
	url := "mem://iq360/" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	compiled.Store(schema, s)
	return s, nil
}
