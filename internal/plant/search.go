package plant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"caktus/internal/llm"
)

const searchResultSchema = `{
  "type": "object",
  "required": ["species", "icon", "minTemperature", "maxTemperature", "minHumidity", "maxHumidity", "minAirQuality", "maxAirQuality"],
  "properties": {
    "species":        {"type": "string"},
    "icon":           {"type": "string"},
    "minTemperature": {"type": "number"},
    "maxTemperature": {"type": "number"},
    "minHumidity":    {"type": "number"},
    "maxHumidity":    {"type": "number"},
    "minAirQuality":  {"type": "number"},
    "maxAirQuality":  {"type": "number"}
  }
}`

var searchSchema = mustCompileSchema("search_result.json", searchResultSchema)

var (
	// ErrServiceUnavailable means the lookup never produced an answer to validate.
	ErrServiceUnavailable = errors.New("plant lookup service unavailable")
	ErrMissingName        = errors.New("plant name is required")
)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// DecodeSearchResult parses the model's answer. Every failure is ErrMalformedPayload.
func DecodeSearchResult(raw string) (SearchResult, error) {
	body := llm.ExtractJSON(llm.StripCodeFence(raw))
	if body == "" {
		return SearchResult{}, fmt.Errorf("%w: no JSON object found", ErrMalformedPayload)
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := searchSchema.Validate(doc); err != nil {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return result, nil
}

// Search asks the LLM for a plant's ideal conditions and validates the answer.
func Search(ctx context.Context, client llm.Client, name string) (Validated, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validated{}, ErrMissingName
	}

	raw, err := client.Complete(ctx, llm.SearchRequest(name))
	if err != nil {
		return Validated{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	candidate, err := DecodeSearchResult(raw)
	if err != nil {
		return Validated{}, err
	}

	return ValidateSearchResult(candidate)
}
