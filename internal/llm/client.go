package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/vc-intel/backend/internal/analyzer"
	"github.com/vc-intel/backend/internal/storage/models"
	"github.com/vc-intel/backend/pkg/circuitbreaker"
	"github.com/vc-intel/backend/pkg/logger"
	"github.com/vc-intel/backend/pkg/retry"
)

// maxExcerptLen bounds how much article content is embedded in the
// scoring prompt.
const maxExcerptLen = 2000

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
}

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type CompletionResponse struct {
	Content string
	Usage   Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func NewClient(apiKey, model string, temperature float32, maxTokens int, timeout time.Duration) *Client {
	client := openai.NewClient(apiKey)

	cb := circuitbreaker.NewCircuitBreaker("llm", circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("LLM client initialized", zap.String("model", model))

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		timeout:     timeout,
		cb:          cb,
		retryConfig: retryConfig,
	}
}

func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.UserPrompt,
		},
	}

	var result *CompletionResponse

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.client.CreateChatCompletion(
				ctx,
				openai.ChatCompletionRequest{
					Model:       c.model,
					Messages:    messages,
					Temperature: temperature,
					MaxTokens:   maxTokens,
				},
			)

			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}

			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			logger.Debug("LLM completion generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			result = &CompletionResponse{
				Content: resp.Choices[0].Message.Content,
				Usage: Usage{
					PromptTokens:     resp.Usage.PromptTokens,
					CompletionTokens: resp.Usage.CompletionTokens,
					TotalTokens:      resp.Usage.TotalTokens,
				},
			}

			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return result, nil
}

// ScoreArticle asks the model for a strict-JSON relevance verdict.
// Implements analyzer.VerdictProvider; any error here sends the article
// to the deterministic keyword fallback instead.
func (c *Client) ScoreArticle(ctx context.Context, in analyzer.ScoreInput) (*analyzer.LLMVerdict, error) {
	systemPrompt := `You are an expert VC analyst. Score articles 0-100 for their strategic value to a venture investor or startup founder.

HIGH VALUE (70-100):
- Investment philosophies, theses and fund strategies
- Business building frameworks and scaling playbooks
- Market analysis and sector insights
- Founder guidance and lessons learned
- Contrarian or forward-looking industry takes

MEDIUM VALUE (40-69):
- Funding rounds with strategic context
- Company profiles or case studies with transferable insights
- Market reports with actionable findings

LOW VALUE (0-39):
- Basic funding announcements without context
- Product launches, event announcements, generic business news

Category must be one of: investment_thesis, scaling_strategy, market_analysis, thought_leadership, operational_excellence, contrarian_insights, general.

Respond with ONLY a JSON object:
{"score": X, "category": "...", "reasoning": "one or two sentences", "insights": "2-3 actionable takeaways"}`

	excerpt := in.Draft.Content
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen]
	}

	userPrompt := fmt.Sprintf(`Title: %s
Domain: %s (source tier: %s, freshness: %s)
Content: %s`,
		in.Draft.Title, in.Draft.Domain, in.Quality, in.Freshness, excerpt)

	resp, err := c.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.2,
		MaxTokens:    300,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to score article: %w", err)
	}

	verdict, err := parseVerdict(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}

	logger.Debug("Article scored by LLM",
		zap.String("article_id", in.Draft.ID),
		zap.Int("score", verdict.Score),
		zap.String("category", string(verdict.Category)),
	)

	return verdict, nil
}

// parseVerdict decodes the model's JSON payload, tolerating markdown
// code fences around it.
func parseVerdict(content string) (*analyzer.LLMVerdict, error) {
	trimmed := stripFences(content)

	var raw struct {
		Score     int    `json:"score"`
		Category  string `json:"category"`
		Reasoning string `json:"reasoning"`
		Insights  string `json:"insights"`
	}

	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}

	if raw.Category == "" {
		return nil, fmt.Errorf("response missing category")
	}

	return &analyzer.LLMVerdict{
		Score:     raw.Score,
		Category:  models.Category(raw.Category),
		Reasoning: raw.Reasoning,
		Insights:  raw.Insights,
	}, nil
}

func stripFences(content string) string {
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
	}

	return strings.TrimSpace(trimmed)
}
