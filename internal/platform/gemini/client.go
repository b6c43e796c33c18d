package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/resumake/resumake-api/internal/config"
	"github.com/resumake/resumake-api/internal/generation"
)

// modelCaller abstracts the single genai call the client makes, so tests can
// substitute a canned model.
type modelCaller interface {
	generate(ctx context.Context, model, prompt string) (string, error)
}

// genaiCaller is the production modelCaller backed by the Gemini API.
type genaiCaller struct {
	client *genai.Client
}

func (c *genaiCaller) generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// Client implements generation.Composer and generation.KeywordExtractor
// against the Gemini API.
type Client struct {
	logger       *slog.Logger
	caller       modelCaller
	model        string
	composeTmpl  *template.Template
	keywordsTmpl *template.Template
}

// NewClient creates a Gemini-backed Client from the LLM configuration.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newClient(logger, &genaiCaller{client: client}, cfg.ModelName)
}

func newClient(logger *slog.Logger, caller modelCaller, model string) (*Client, error) {
	composeTmpl, err := template.New("compose").Parse(composePromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse compose prompt template: %w", err)
	}
	keywordsTmpl, err := template.New("keywords").Parse(keywordsPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keywords prompt template: %w", err)
	}

	return &Client{
		logger:       logger,
		caller:       caller,
		model:        model,
		composeTmpl:  composeTmpl,
		keywordsTmpl: keywordsTmpl,
	}, nil
}

// Compose generates the resume JSON document from the collected inputs.
func (c *Client) Compose(ctx context.Context, input generation.ComposeInput) (string, error) {
	var prompt bytes.Buffer
	if err := c.composeTmpl.Execute(&prompt, input); err != nil {
		return "", fmt.Errorf("failed to execute compose prompt template: %w", err)
	}

	c.logger.DebugContext(ctx, "composing resume",
		"model", c.model,
		"prompt_length", prompt.Len())

	text, err := c.caller.generate(ctx, c.model, prompt.String())
	if err != nil {
		return "", err
	}

	return stripCodeFence(text), nil
}

// ExtractKeywords derives an ATS keyword list from a job description. The
// raw model output is split, trimmed, lowercased, deduplicated and sorted so
// downstream consumers see a stable list.
func (c *Client) ExtractKeywords(ctx context.Context, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", generation.ErrEmptyInput
	}

	var prompt bytes.Buffer
	data := struct{ JobDescription string }{JobDescription: jobDescription}
	if err := c.keywordsTmpl.Execute(&prompt, data); err != nil {
		return "", fmt.Errorf("failed to execute keywords prompt template: %w", err)
	}

	raw, err := c.caller.generate(ctx, c.model, prompt.String())
	if err != nil {
		return "", err
	}

	return normalizeKeywords(raw), nil
}

// normalizeKeywords turns raw model output into a sorted, deduplicated,
// comma-separated keyword list.
func normalizeKeywords(raw string) string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		kw := strings.ToLower(strings.TrimSpace(part))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return strings.Join(keywords, ", ")
}

// stripCodeFence removes a surrounding markdown code fence, which models
// sometimes add despite instructions.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
