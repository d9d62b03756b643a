package newsai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/internal/pkg/gateway"
)

const extractFunctionName = "extract_news_article"

// extractTool is the structured-extraction directive sent with every
// generation request.
func extractTool() gateway.Tool {
	return gateway.Tool{
		Type: "function",
		Function: gateway.FunctionDef{
			Name:        extractFunctionName,
			Description: "Extract structured news article data from tweet content",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"headline": map[string]any{
						"type":        "string",
						"description": "Professional, accurate news headline (60-80 characters)",
					},
					"excerpt": map[string]any{
						"type":        "string",
						"description": "Concise summary/lead paragraph (150-200 characters)",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Full article content in professional journalistic style (3-4 paragraphs, markdown format)",
					},
					"category": map[string]any{
						"type":        "string",
						"enum":        models.CategoryValues(),
						"description": "Article category based on content analysis",
					},
					"source_reference": map[string]any{
						"type":        "string",
						"description": `How to reference the source (e.g. "Twitter/X", "Social Media", specific handle if known)`,
					},
				},
				"required":             []string{"headline", "excerpt", "content", "category", "source_reference"},
				"additionalProperties": false,
			},
		},
	}
}

// Draft is a generated article awaiting editor approval. The gateway's
// headline is exposed as title.
type Draft struct {
	Title           string          `json:"title"`
	Excerpt         string          `json:"excerpt"`
	Content         string          `json:"content"`
	Category        models.Category `json:"category"`
	SourceReference string          `json:"source_reference"`
}

// extractedArticle mirrors the tool schema. Pointers tell missing from empty.
type extractedArticle struct {
	Headline        *string `json:"headline"`
	Excerpt         *string `json:"excerpt"`
	Content         *string `json:"content"`
	Category        *string `json:"category"`
	SourceReference *string `json:"source_reference"`
}

type extractedFields struct {
	Headline        string `json:"headline" validate:"required"`
	Excerpt         string `json:"excerpt" validate:"required"`
	Content         string `json:"content" validate:"required"`
	Category        string `json:"category" validate:"required,category"`
	SourceReference string `json:"source_reference" validate:"required"`
}

var errEmptyArguments = errors.New("tool call carries no arguments")

// decodeDraft parses tool-call arguments against the extraction schema.
// Unknown, missing, null, mistyped or blank fields are all rejected. Values
// are returned as the model produced them.
func decodeDraft(arguments string) (*Draft, error) {
	if strings.TrimSpace(arguments) == "" {
		return nil, errEmptyArguments
	}

	dec := json.NewDecoder(strings.NewReader(arguments))
	dec.DisallowUnknownFields()

	var raw extractedArticle
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding arguments: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after arguments object")
	}

	var missing []string
	pick := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}
	fields := extractedFields{
		Headline:        pick("headline", raw.Headline),
		Excerpt:         pick("excerpt", raw.Excerpt),
		Content:         pick("content", raw.Content),
		Category:        pick("category", raw.Category),
		SourceReference: pick("source_reference", raw.SourceReference),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	for name, v := range map[string]string{
		"headline":         fields.Headline,
		"excerpt":          fields.Excerpt,
		"content":          fields.Content,
		"source_reference": fields.SourceReference,
	} {
		if v != "" && strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("blank field: %s", name)
		}
	}
	// category must already be one of the canonical values, no repair
	if err := models.Validator().Struct(fields); err != nil {
		return nil, fmt.Errorf("invalid fields: %v", models.FieldErrors(err))
	}

	return &Draft{
		Title:           fields.Headline,
		Excerpt:         fields.Excerpt,
		Content:         fields.Content,
		Category:        models.Category(fields.Category),
		SourceReference: fields.SourceReference,
	}, nil
}
