package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phoenix-ai/apiprobe/internal/domain"
)

// DefaultTimeout bounds a request when the caller supplies none.
const DefaultTimeout = 30 * time.Second

// Doer issues a single HTTP request. It is satisfied by *http.Client and by
// test doubles, keeping the executor independently testable.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Executor fires the single HTTP request described by a RequestSpec.
// It never returns an error for transport failures; those are captured as
// data on the outcome so callers only ever inspect the report status.
type Executor struct {
	client Doer
	log    *logrus.Logger
}

// New creates an Executor. A nil client falls back to a plain http.Client;
// the per-request timeout is enforced via context, not on the client.
func New(client Doer, log *logrus.Logger) *Executor {
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &Executor{client: client, log: log}
}

// Execute performs exactly one request, no retries. The returned outcome has
// either StatusCode or TransportError set, never both. ResponseTimeMillis
// covers the network round trip and body read only.
func (e *Executor) Execute(ctx context.Context, spec domain.RequestSpec, opts domain.RequestOptions) domain.HTTPOutcome {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := e.buildRequest(ctx, spec, opts)
	if err != nil {
		return domain.HTTPOutcome{TransportError: err.Error()}
	}

	e.log.Debugf("Sending %s %s", spec.Method, req.URL)

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Debugf("Request failed: %v", err)
		return domain.HTTPOutcome{
			ResponseTimeMillis: elapsedMillis(start),
			TransportError:     err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.HTTPOutcome{
			ResponseTimeMillis: elapsedMillis(start),
			TransportError:     err.Error(),
		}
	}
	elapsed := elapsedMillis(start)

	outcome := domain.HTTPOutcome{
		StatusCode:         resp.StatusCode,
		ResponseTimeMillis: elapsed,
		Body:               body,
	}

	// A non-JSON body is not an error condition; ParsedJSON simply stays nil.
	var parsed any
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		outcome.ParsedJSON = parsed
	}

	e.log.Debugf("Received %d in %.1fms", resp.StatusCode, elapsed)
	return outcome
}

// buildRequest shapes the outgoing request: query parameters, JSON body,
// default headers and auth.
func (e *Executor) buildRequest(ctx context.Context, spec domain.RequestSpec, opts domain.RequestOptions) (*http.Request, error) {
	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(spec.Method), spec.URL, body)
	if err != nil {
		return nil, err
	}

	if len(opts.QueryParams) > 0 {
		q := req.URL.Query()
		for k, v := range opts.QueryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	switch opts.Auth.Type {
	case domain.AuthBearer:
		req.Header.Set("Authorization", "Bearer "+opts.Auth.Token)
	case domain.AuthBasic:
		req.SetBasicAuth(opts.Auth.Username, opts.Auth.Password)
	case domain.AuthAPIKey:
		header := opts.Auth.Header
		if header == "" {
			header = "X-API-Key"
		}
		req.Header.Set(header, opts.Auth.Key)
	}

	return req, nil
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
