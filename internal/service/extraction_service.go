package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"billex/internal/config"
	"billex/internal/domain"
	"billex/internal/port"
	"billex/internal/raster"
	"billex/internal/sanitize"
)

// ExtractionService runs the bill extraction pipeline and exposes the
// optional run history.
type ExtractionService interface {
	// ExtractBill processes one document reference end to end. It never
	// returns an error; failures are reported inside the envelope with
	// IsSuccess=false.
	ExtractBill(ctx context.Context, documentRef string) *domain.ExtractionResponse
	ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
}

// DocumentOpener opens raw document bytes into a renderable page source.
// *raster.Rasterizer is the production implementation.
type DocumentOpener interface {
	Open(data []byte) (raster.Source, error)
}

type extractionService struct {
	fetcher     port.DocumentFetcher
	rasterizer  DocumentOpener
	extractor   port.PageExtractor
	runs        port.ExtractionRepository // nil disables history
	concurrency int
	queueDepth  int
}

// NewExtractionService creates an ExtractionService. runs may be nil, which
// disables history endpoints without affecting extraction.
func NewExtractionService(
	fetcher port.DocumentFetcher,
	rasterizer DocumentOpener,
	pageExtractor port.PageExtractor,
	runs port.ExtractionRepository,
	cfg *config.PipelineConfig,
) ExtractionService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	queueDepth := cfg.QueueDepth
	if queueDepth <= 0 {
		queueDepth = concurrency
	}
	return &extractionService{
		fetcher:     fetcher,
		rasterizer:  rasterizer,
		extractor:   pageExtractor,
		runs:        runs,
		concurrency: concurrency,
		queueDepth:  queueDepth,
	}
}

// pageOutcome pairs one page's raw model output with its usage record.
// A failed page holds a safe-empty extraction and nil usage.
type pageOutcome struct {
	raw   *port.RawExtraction
	usage *port.Usage
}

func (s *extractionService) ExtractBill(ctx context.Context, documentRef string) *domain.ExtractionResponse {
	start := time.Now()

	fileBytes, err := s.fetcher.Fetch(ctx, documentRef)
	if err != nil {
		log.Printf("extraction: download failed for %s: %v", documentRef, err)
		return s.fail(ctx, documentRef, start, err)
	}

	doc, err := s.rasterizer.Open(fileBytes)
	if err != nil {
		log.Printf("extraction: unrenderable document %s: %v", documentRef, err)
		return s.fail(ctx, documentRef, start, err)
	}
	defer func() { _ = doc.Close() }()

	pageCount := doc.PageCount()
	outcomes := make([]pageOutcome, pageCount)

	// Bounded pipeline: the producer renders pages into a fixed-depth queue
	// and the workers drain up to `concurrency` at once, so peak decoded-page
	// memory stays proportional to the worker count rather than the document
	// length. Completion order is irrelevant: each worker writes its result
	// at the page's own index.
	pages := make(chan raster.Page, s.queueDepth)
	renderErr := make(chan error, 1)

	go func() {
		defer close(pages)
		for n := 1; n <= pageCount; n++ {
			page, err := doc.RenderPage(n)
			if err != nil {
				renderErr <- err
				return
			}
			select {
			case pages <- page:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < s.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range pages {
				outcomes[page.Number-1] = s.extractPage(ctx, page)
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-renderErr:
		log.Printf("extraction: rendering failed for %s: %v", documentRef, err)
		return s.fail(ctx, documentRef, start, err)
	default:
	}
	if err := ctx.Err(); err != nil {
		return s.fail(context.WithoutCancel(ctx), documentRef, start, err)
	}

	// Aggregate in page order regardless of completion order.
	var usage domain.TokenUsage
	totalItems := 0
	pagewise := make([]domain.PageLineItems, 0, pageCount)
	for i, outcome := range outcomes {
		if outcome.usage != nil {
			usage.Add(domain.TokenUsage{
				TotalTokens:  outcome.usage.TotalTokens,
				InputTokens:  outcome.usage.PromptTokens,
				OutputTokens: outcome.usage.CompletionTokens,
			})
		}

		items := sanitize.Items(outcome.raw.BillItems)
		totalItems += len(items)
		pagewise = append(pagewise, domain.PageLineItems{
			PageNo:    strconv.Itoa(i + 1),
			PageType:  domain.CoercePageType(outcome.raw.PageType),
			BillItems: items,
		})
	}

	resp := &domain.ExtractionResponse{
		IsSuccess:  true,
		TokenUsage: usage,
		Data: &domain.ExtractionData{
			PagewiseLineItems: pagewise,
			TotalItemCount:    totalItems,
		},
	}

	log.Printf("extraction: completed %s (%d pages, %d items) in %s",
		documentRef, pageCount, totalItems, time.Since(start).Round(time.Millisecond))
	s.record(ctx, documentRef, start, resp, pageCount)
	return resp
}

// extractPage runs one model call. Any failure degrades to a safe-empty
// result so a bad page never aborts the rest of the document.
func (s *extractionService) extractPage(ctx context.Context, page raster.Page) pageOutcome {
	raw, usage, err := s.extractor.ExtractPage(ctx, port.ExtractInput{
		ImageJPEG: page.JPEG,
		PageNo:    page.Number,
	})
	if err != nil {
		log.Printf("extraction: page %d failed: %v", page.Number, err)
		return pageOutcome{raw: &port.RawExtraction{PageType: string(domain.PageTypeBillDetail)}}
	}
	return pageOutcome{raw: raw, usage: usage}
}

// fail builds the failure envelope: zeroed usage, empty data, and the error
// message as the sole failure signal next to IsSuccess=false.
func (s *extractionService) fail(ctx context.Context, documentRef string, start time.Time, err error) *domain.ExtractionResponse {
	resp := &domain.ExtractionResponse{
		IsSuccess: false,
		Data: &domain.ExtractionData{
			PagewiseLineItems: []domain.PageLineItems{},
		},
		Error: err.Error(),
	}
	s.record(ctx, documentRef, start, resp, 0)
	return resp
}

// record persists the run when history is configured. Persistence failures
// are logged, never surfaced: history is an audit trail, not a dependency of
// extraction.
func (s *extractionService) record(ctx context.Context, documentRef string, start time.Time, resp *domain.ExtractionResponse, pageCount int) {
	if s.runs == nil {
		return
	}

	run := &domain.ExtractionRun{
		ID:           uuid.New(),
		DocumentRef:  documentRef,
		IsSuccess:    resp.IsSuccess,
		PageCount:    pageCount,
		TotalTokens:  resp.TokenUsage.TotalTokens,
		InputTokens:  resp.TokenUsage.InputTokens,
		OutputTokens: resp.TokenUsage.OutputTokens,
		Error:        resp.Error,
		DurationMS:   time.Since(start).Milliseconds(),
		CreatedAt:    time.Now().UTC(),
	}
	if resp.Data != nil {
		run.ItemCount = resp.Data.TotalItemCount
		if payload, err := json.Marshal(resp.Data); err == nil {
			run.Result = payload
		}
	}

	if err := s.runs.Create(ctx, run); err != nil {
		log.Printf("extraction: recording run for %s failed: %v", documentRef, err)
	}
}

func (s *extractionService) ListRuns(ctx context.Context, offset, limit int) ([]domain.ExtractionRun, int, error) {
	if s.runs == nil {
		return nil, 0, domain.ErrHistoryDisabled
	}
	return s.runs.List(ctx, offset, limit)
}

func (s *extractionService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	if s.runs == nil {
		return nil, domain.ErrHistoryDisabled
	}
	return s.runs.GetByID(ctx, id)
}
