package correction

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed proposal.schema.json
var proposalSchema string

// ParseProposal decodes a provider response. Markdown code fences around the
// JSON are tolerated; anything that does not match the proposal schema is a
// *ProviderError.
func ParseProposal(raw string) (*Proposal, error) {
	cleaned := ExtractJSON(raw)
	if cleaned == "" {
		return nil, &ProviderError{Err: errors.New("empty proposal")}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(proposalSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("parse proposal: %w", err)}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, &ProviderError{Err: fmt.Errorf("proposal does not match schema: %s", strings.Join(problems, "; "))}
	}

	var proposal Proposal
	if err := json.Unmarshal([]byte(cleaned), &proposal); err != nil {
		return nil, &ProviderError{Err: fmt.Errorf("decode proposal: %w", err)}
	}
	return &proposal, nil
}

// ExtractJSON strips surrounding whitespace and markdown code fences.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
