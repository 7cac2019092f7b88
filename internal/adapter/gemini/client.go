package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/calm-guard-drill/internal/domain"
	"github.com/couchcryptid/calm-guard-drill/internal/observability"
)

const openingPrompt = `Generate a short disaster scenario in 2-3 lines.
Pick one: earthquake, flood, fire, or chemical leak.
Include danger and end with: "What is your first action?"
Keep the message short, simple, crisp.`

const continuationPrompt = `The user did: %q.
Continue the scenario in 2 short lines.
Correct their action if unsafe. Praise if safe.
When the user has reached safety, finish with "Simulation complete."
Otherwise end with: "What do you do next?"`

// Client implements domain.NarrativeGenerator using the Gemini
// generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a Gemini client. baseURL is the models collection,
// e.g. https://generativelanguage.googleapis.com/v1/models.
func NewClient(apiKey, model, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Generate asks the model for the next scenario turn. An empty string with a
// nil error means the model returned no candidates.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, buildPrompt(req))
	c.metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.GenerationRequests.WithLabelValues("error").Inc()
		return "", err
	case text == "":
		c.metrics.GenerationRequests.WithLabelValues("empty").Inc()
	default:
		c.metrics.GenerationRequests.WithLabelValues("success").Inc()
	}
	c.logger.Debug("narrative generated", "step", req.Step, "chars", len(text))
	return text, nil
}

func buildPrompt(req domain.GenerationRequest) string {
	if req.Step <= 1 {
		return openingPrompt
	}
	return fmt.Sprintf(continuationPrompt, strings.TrimSpace(req.UserAction))
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	u := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini API error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var geminiResp response
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return geminiResp.text(), nil
}

// Gemini API request and response types.

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type response struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// text joins the parts of the first candidate.
func (r response) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
