// Package gemini is the thin inference collaborator: one page image plus one
// prompt in, raw model text out. Everything interesting happens downstream in
// the extraction pipeline; this client only speaks the generateContent wire
// format.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"docuvision/internal/common"
	"docuvision/internal/prompt"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
	Timeout         time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash-exp"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TopP == 0 {
		cfg.TopP = 1.0
	}
	if cfg.TopK == 0 {
		cfg.TopK = 32
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 8192
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// Infer sends one PNG page image and one prompt to the model and returns the
// raw text of the first candidate. Implements pipeline.Inferencer.
func (c *Client) Infer(ctx context.Context, image []byte, promptText string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Debug("gemini.infer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(image),
		"prompt_len", len(promptText),
	)

	body := map[string]any{
		"system_instruction": map[string]any{
			"parts": []map[string]any{{"text": prompt.SystemInstruction}},
		},
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"inline_data": map[string]any{
					"mime_type": "image/png",
					"data":      base64.StdEncoding.EncodeToString(image),
				}},
				{"text": promptText},
			},
		}},
		"generationConfig": map[string]any{
			"temperature":     c.cfg.Temperature,
			"topP":            c.cfg.TopP,
			"topK":            c.cfg.TopK,
			"candidateCount":  1,
			"maxOutputTokens": c.cfg.MaxOutputTokens,
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model)
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("gemini.infer.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("INFERENCE_ERROR", "gemini request failed", err)
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Error("gemini.infer.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("INFERENCE_ERROR", "decode gemini response", err)
	}
	if len(resp.Candidates) == 0 {
		c.log.Error("gemini.infer.no_candidates",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewAppError("INFERENCE_ERROR", "no candidates in gemini response", common.ErrInference)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	text := b.String()

	c.log.Info("gemini.infer.ok",
		"req_id", rid,
		"text_bytes", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if cerr := Body.Close(); cerr != nil {
			c.log.Warn("gemini response body close error", "error", cerr)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}
