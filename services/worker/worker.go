package worker

import (
	"context"
	"io"
	"time"

	"sjsage522/licitacaoworker/internal/crawler"
	"sjsage522/licitacaoworker/internal/output"
	"sjsage522/licitacaoworker/logger"
	"sjsage522/licitacaoworker/services/publisher"
)

// Crawler runs one complete crawl
type Crawler interface {
	Run(ctx context.Context) (crawler.Result, error)
}

// Worker runs a crawl, writes the records and publishes them
type Worker struct {
	crawler   Crawler
	publisher publisher.Publisher
	out       io.Writer
	format    output.Format
	log       *logger.Logger
}

// NewWorker creates a new worker; pub may be nil to disable publishing
func NewWorker(c Crawler, pub publisher.Publisher, out io.Writer, format output.Format) *Worker {
	return &Worker{
		crawler:   c,
		publisher: pub,
		out:       out,
		format:    format,
		log:       logger.ForWorker(),
	}
}

// Run crawls once and writes every collected record to the output. When the
// context is canceled mid-crawl the partial records are still written and
// the context error is returned; nothing is published.
func (w *Worker) Run(ctx context.Context) (crawler.Result, error) {
	start := time.Now()

	result, crawlErr := w.crawler.Run(ctx)
	if crawlErr != nil {
		w.log.Warn().Err(crawlErr).Int("records", len(result.Records)).Msg("Crawl interrupted")
	}

	if err := output.Write(w.out, w.format, result.Records); err != nil {
		return result, err
	}
	if crawlErr != nil {
		return result, crawlErr
	}

	if logger.IsDebugEnabled() && len(result.Records) > 0 {
		if sample, err := output.MarshalRecord(result.Records[0]); err == nil {
			w.log.Debug().RawJSON("record", sample).Msg("First record")
		}
	}

	published := w.publish(ctx, result.Records)

	w.log.Info().
		Str("reason", string(result.Reason)).
		Int("pages", result.Pages).
		Int("records", len(result.Records)).
		Int("published", published).
		Dur("elapsed", time.Since(start)).
		Msg("Run finished")
	return result, nil
}

// publish sends each record to the publisher and trims the stream. Failures
// are logged and do not affect the written output.
func (w *Worker) publish(ctx context.Context, records []crawler.Record) int {
	if w.publisher == nil || len(records) == 0 {
		return 0
	}

	published := 0
	for _, r := range records {
		data, err := output.MarshalRecord(r)
		if err != nil {
			logger.LogError("publisher", err, "Failed to encode record %s", r.ID)
			continue
		}
		if err := w.publisher.Publish(ctx, r.ID.String(), data); err != nil {
			logger.LogError("publisher", err, "Failed to publish record %s", r.ID)
			continue
		}
		published++
	}

	if err := w.publisher.TrimStreams(ctx); err != nil {
		logger.LogError("publisher", err, "Failed to trim stream")
	}
	logger.ForPublisher().Debug().Int("published", published).Int("records", len(records)).Msg("Records published")
	return published
}
