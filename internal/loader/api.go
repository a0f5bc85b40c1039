package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/util"
)

// FetchError describes a failed catalog request
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	msg := "fetch " + e.Endpoint + " failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" with status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes util.ErrFetch alongside the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{util.ErrFetch}
	}
	return []error{util.ErrFetch, e.Err}
}

// APIOptions configures an APILoader
type APIOptions struct {
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// DefaultAPIOptions returns the options used when none are configured
func DefaultAPIOptions() APIOptions {
	return APIOptions{
		Timeout:      util.DefaultFetchTimeout,
		RetryCount:   util.DefaultFetchRetries,
		RetryWait:    500 * time.Millisecond,
		RetryMaxWait: 5 * time.Second,
	}
}

// APILoader fetches catalogs published as JSON over HTTP.
type APILoader struct {
	client *resty.Client
}

// NewAPILoader creates a loader whose requests retry on transport errors and 5xx responses.
func NewAPILoader(opts APIOptions) *APILoader {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryMaxWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() >= http.StatusInternalServerError
		})

	return &APILoader{client: client}
}

// Fetch downloads and decodes the records at endpoint. The undecoded payload
// is returned too so callers can snapshot it.
func (l *APILoader) Fetch(ctx context.Context, endpoint string) ([]catalog.RawRecord, []byte, error) {
	util.DebugLog("Fetching catalog from %s", endpoint)

	resp, err := l.client.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, nil, &FetchError{Endpoint: endpoint, Err: err}
	}

	if !resp.IsSuccess() {
		return nil, nil, &FetchError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(http.StatusText(resp.StatusCode())),
		}
	}

	payload := resp.Body()
	records, err := DecodeRecords(payload)
	if err != nil {
		return nil, nil, &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Err: err}
	}

	util.DebugLog("Fetched %d records (%d bytes) in %s", len(records), len(payload), resp.Time())
	return records, payload, nil
}
