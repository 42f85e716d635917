// Package pipeline drives the classify -> extract -> validate -> render
// sequence for page images. Each page is independent; the only suspension
// point is the inference call, which is an external collaborator behind the
// Inferencer interface.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"docuvision/constants"
	"docuvision/internal/classify"
	"docuvision/internal/extract"
	"docuvision/internal/prompt"
	"docuvision/internal/render"
)

const (
	// DefaultWorkers keeps in-flight model calls small to respect upstream
	// rate limits.
	DefaultWorkers = 3
	MaxWorkers     = 4
)

// Inferencer is the vision-model collaborator: one image plus one prompt in,
// raw text out. Retry and backoff live with the implementation, not here.
type Inferencer interface {
	Infer(ctx context.Context, image []byte, promptText string) (string, error)
}

// Options configures one processing call. It is an explicit value rather than
// ambient state so every call is independently testable.
type Options struct {
	// ClassificationEnabled runs the classification call before extraction.
	// Ignored when a CustomPrompt or TypeHint is supplied.
	ClassificationEnabled bool
	// StructuredExtraction validates model output against the type's schema.
	// When false, every page degrades gracefully to raw markdown text.
	StructuredExtraction bool
	// TypeHint skips classification and extracts as the given type.
	TypeHint *constants.DocumentType
	// CustomPrompt replaces the catalog prompt entirely. Output is kept raw
	// since its shape is unknown.
	CustomPrompt string
	// CustomFields appends ad-hoc fields to the catalog prompt. The validator
	// ignores the extra keys they produce.
	CustomFields map[string]string
	Format       render.Format
	// Workers bounds concurrent in-flight model calls in ProcessPages.
	Workers int
}

// PageResult is the per-page output: the rendered string plus the resolved
// type and a structured-success flag the caller can log or aggregate.
type PageResult struct {
	Index        int
	DocumentType constants.DocumentType
	Structured   bool
	Output       string
}

type Pipeline struct {
	logger *slog.Logger
	infer  Inferencer
	parser *extract.Parser
}

func New(logger *slog.Logger, infer Inferencer) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger,
		infer:  infer,
		parser: extract.NewParser(logger),
	}
}

// ProcessPage runs the full sequence for a single page image.
//
// Inference errors are the only failures that propagate; everything after the
// model call (parsing, validation, rendering) degrades instead of failing.
func (p *Pipeline) ProcessPage(ctx context.Context, index int, image []byte, opts Options) (PageResult, error) {
	start := time.Now()

	docType := constants.Other
	if opts.TypeHint != nil {
		docType = *opts.TypeHint
	}

	if opts.ClassificationEnabled && opts.CustomPrompt == "" && opts.TypeHint == nil {
		answer, err := p.infer.Infer(ctx, image, prompt.ClassificationPrompt())
		if err != nil {
			p.logger.Error("pipeline.classify.infer_failed", "page", index, "error", err)
			return PageResult{}, err
		}
		docType = classify.Classify(answer)
		p.logger.Debug("pipeline.classify.ok",
			"page", index,
			"answer", answer,
			"document_type", string(docType),
		)
	}

	extractionPrompt := p.extractionPrompt(docType, opts)
	raw, err := p.infer.Infer(ctx, image, extractionPrompt)
	if err != nil {
		p.logger.Error("pipeline.extract.infer_failed", "page", index, "error", err)
		return PageResult{}, err
	}

	var outcome extract.Outcome
	if opts.StructuredExtraction && opts.CustomPrompt == "" {
		outcome = p.parser.Parse(raw, docType)
	} else {
		outcome = extract.RawOutcome(docType, raw)
	}

	res := PageResult{
		Index:        index,
		DocumentType: docType,
		Structured:   outcome.Structured(),
		Output:       render.Render(outcome, opts.Format),
	}
	p.logger.Info("pipeline.page.ok",
		"page", index,
		"document_type", string(docType),
		"structured", res.Structured,
		"output_bytes", len(res.Output),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) extractionPrompt(docType constants.DocumentType, opts Options) string {
	switch {
	case opts.CustomPrompt != "":
		return opts.CustomPrompt
	case !opts.StructuredExtraction:
		return prompt.MarkdownFallback
	case len(opts.CustomFields) > 0:
		return prompt.CustomPrompt(docType, opts.CustomFields)
	default:
		return prompt.ExtractionPrompt(docType)
	}
}

// ProcessPages runs every page through ProcessPage with a bounded worker pool
// and returns results in original page order regardless of completion order.
// On the first failure the remaining work is cancelled and the partial batch
// is discarded: at most one result per page, no partially rendered pages.
func (p *Pipeline) ProcessPages(ctx context.Context, images [][]byte, opts Options) ([]PageResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]PageResult, len(images))
	sem := make(chan struct{}, workers)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, img := range images {
		wg.Add(1)
		go func(index int, image []byte) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}

			res, err := p.ProcessPage(ctx, index, image, opts)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancel()
				return
			}
			// Indexed assignment re-sorts completion order back into
			// submission order.
			results[index] = res
		}(i, img)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
