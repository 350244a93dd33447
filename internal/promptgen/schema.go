package promptgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ytbench/ytbench/internal/llm"
)

// promptArraySchema constrains the JSON array the model must return before
// we accept it as a prompt set.
const promptArraySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "maxItems": 8,
  "items": {
    "type": "object",
    "required": ["prompt"],
    "properties": {
      "prompt_id": { "type": "string" },
      "prompt": { "type": "string", "minLength": 10 },
      "domain": { "type": "string" },
      "difficulty": { "type": "string" },
      "golden_answer_guidance": { "type": "string" }
    }
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(promptArraySchema))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("prompts.schema.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("prompts.schema.json")
})

// validatePromptArray checks a raw JSON array against the prompt schema.
// Violations are a generation failure: the model did not follow the
// instruction contract.
func validatePromptArray(rawJSON string) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile prompt schema: %w", err)
	}

	value, err := jsonschema.UnmarshalJSON(strings.NewReader(rawJSON))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON array: %w", llm.ErrGeneration, err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: prompt array rejected by schema: %w", llm.ErrGeneration, err)
	}
	return nil
}
