package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrNoJSON = errors.New("no JSON object in model output")

// CleanJSON strips a surrounding markdown code fence from model output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}

// ExtractJSONObject returns the raw JSON object in model output. Prose around
// the object is dropped by slicing from the first '{' to the last '}'.
func ExtractJSONObject(output string) ([]byte, error) {
	clean := CleanJSON(output)
	if json.Valid([]byte(clean)) && strings.HasPrefix(clean, "{") {
		return []byte(clean), nil
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	candidate := clean[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, ErrNoJSON
	}
	return []byte(candidate), nil
}

// ValidateJSON checks doc against a JSON schema.
func ValidateJSON(schema string, doc []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// DecodeJSON extracts, validates (when schema is non-empty) and decodes the
// JSON object in model output.
func DecodeJSON(output string, schema string, out any) error {
	raw, err := ExtractJSONObject(output)
	if err != nil {
		return err
	}
	if schema != "" {
		if err := ValidateJSON(schema, raw); err != nil {
			return err
		}
	}
	raw, err = integralNumbers(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// integralNumbers rewrites numbers with no fractional part (85.0, 1e2) as
// plain integers. The schema's "integer" type accepts them, but decoding
// them into an int field would fail.
func integralNumbers(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return json.Marshal(rewriteNumbers(v))
}

func rewriteNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = rewriteNumbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = rewriteNumbers(e)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		f, err := t.Float64()
		if err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactInt {
			return json.Number(strconv.FormatInt(int64(f), 10))
		}
	}
	return v
}
