package crawler

import (
	"context"
	"time"

	"sjsage522/licitacaoworker/logger"
	crawlerrors "sjsage522/licitacaoworker/pkg/errors"
)

// Options configures a Controller
type Options struct {
	RootURL   string
	Selectors Selectors
	// Now returns the run clock; defaults to time.Now
	Now func() time.Time
	// Location is used to read listing dates and to find "today"
	Location *time.Location
	// SkipFailedDetails drops entries whose detail page could not be
	// fetched instead of keeping them with unfound detail fields
	SkipFailedDetails bool
}

// Controller walks the listing pages one after another and merges every
// listing stub with its detail page.
type Controller struct {
	fetcher Fetcher
	opts    Options
	log     *logger.Logger
}

// crawlState is threaded through the loop; nothing outlives Run.
type crawlState struct {
	url     string
	records []Record
	pages   int
}

// NewController creates a controller that fetches pages with fetcher
func NewController(fetcher Fetcher, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Controller{
		fetcher: fetcher,
		opts:    opts,
		log:     logger.ForCrawler(),
	}
}

// Run crawls from the root listing URL until one of the termination
// conditions holds. Records accumulate across all pages. The only error is
// the context's, returned together with what was collected so far.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	today := startOfDay(c.opts.Now(), c.opts.Location)
	st := crawlState{url: c.opts.RootURL}

	for {
		if err := ctx.Err(); err != nil {
			return st.result(""), err
		}

		next, reason, err := c.step(ctx, st, today)
		if err != nil {
			return next.result(""), err
		}
		if reason != "" {
			c.log.Info().
				Str("reason", string(reason)).
				Int("pages", next.pages).
				Int("records", len(next.records)).
				Msg("Crawl finished")
			return next.result(reason), nil
		}
		st = next
	}
}

// step processes the listing page at st.url. It returns the advanced state,
// or a termination reason when the crawl must stop.
func (c *Controller) step(ctx context.Context, st crawlState, today time.Time) (crawlState, Termination, error) {
	log := c.log.WithField("page_url", st.url)

	doc, err := c.fetcher.Fetch(ctx, st.url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return st, "", ctxErr
		}
		log.WithError(err).Warn().Str("error_type", string(crawlerrors.TypeOf(err))).Msg("Listing page fetch failed")
		return st, TerminationFetchFailed, nil
	}

	stubs, ok := ParseListing(doc, st.url, c.opts.Selectors)
	if !ok || len(stubs) == 0 {
		log.Info().Bool("container_found", ok).Msg("No listing entries on page")
		return st, TerminationExhausted, nil
	}
	st.pages++
	log.Debug().Int("stubs", len(stubs)).Msg("Listing page parsed")

	for _, stub := range stubs {
		if err := ctx.Err(); err != nil {
			return st, "", err
		}
		record, keep, err := c.visit(ctx, stub)
		if err != nil {
			return st, "", err
		}
		if keep {
			st.records = append(st.records, record)
		}
	}

	nextURL, ok := NextPageURL(st.url)
	if !ok {
		return st, TerminationPaginationUnrecognized, nil
	}

	// Pages run newest first. Only this page's oldest entry is compared,
	// so listings that are not ordered across pages can stop the crawl
	// early or late.
	if earliest, ok := MinPublicationDate(stubs, c.opts.Location); ok && !earliest.Before(today) {
		log.Debug().Time("earliest", earliest).Time("today", today).Msg("Oldest entry is not in the past")
		return st, TerminationDateReached, nil
	}

	st.url = nextURL
	return st, "", nil
}

// visit fetches the detail page of stub and merges both. A failed detail
// fetch keeps the entry with unfound detail fields unless
// SkipFailedDetails is set. A fetch interrupted by the context returns the
// context error and no record.
func (c *Controller) visit(ctx context.Context, stub ListingStub) (Record, bool, error) {
	if !stub.Link.Found {
		c.log.Warn().Str("title", stub.Title.String()).Msg("Listing entry has no detail link")
		return NewRecord(stub, DetailRecord{}), !c.opts.SkipFailedDetails, nil
	}

	doc, err := c.fetcher.Fetch(ctx, stub.Link.Value)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Record{}, false, ctxErr
		}
		c.log.WithError(err).Warn().
			Str("error_type", string(crawlerrors.TypeOf(err))).
			Str("detail_url", stub.Link.Value).
			Bool("skipped", c.opts.SkipFailedDetails).
			Msg("Detail page fetch failed")
		return NewRecord(stub, DetailRecord{ID: ResolveID(stub.Link.Value)}), !c.opts.SkipFailedDetails, nil
	}

	return NewRecord(stub, ExtractDetail(doc, stub.Link.Value, c.opts.Selectors)), true, nil
}

func (st crawlState) result(reason Termination) Result {
	return Result{Records: st.records, Reason: reason, Pages: st.pages}
}
