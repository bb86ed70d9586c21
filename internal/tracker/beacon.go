package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/terroirai/terroir-web/internal/metadata"
	"github.com/terroirai/terroir-web/pkg/urlutil"
)

/*
Responsibilities

- Encode report payloads as JSON
- POST them to the collection endpoint on a detached goroutine
- Record the outcome to the metadata sink and otherwise discard it

Delivery Semantics

- Fire and forget: Dispatch returns before the request is sent
- No retry, no queue, no ordering between reports
- Each report is bounded by its own timeout derived from context.Background,
  so it outlives the navigation that produced it
*/

// Dispatcher sends one report. Implementations must not block the caller.
type Dispatcher interface {
	Dispatch(endpoint string, payload any)
}

type HTTPBeacon struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	apiBaseURL   string
	userAgent    string
	timeout      time.Duration
	inFlight     sync.WaitGroup
}

func NewHTTPBeacon(
	metadataSink metadata.MetadataSink,
	apiBaseURL string,
	userAgent string,
	timeout time.Duration,
) *HTTPBeacon {
	return &HTTPBeacon{
		metadataSink: metadataSink,
		httpClient:   &http.Client{},
		apiBaseURL:   apiBaseURL,
		userAgent:    userAgent,
		timeout:      timeout,
	}
}

// NewHTTPBeaconForTest allows injecting an HTTP client.
func NewHTTPBeaconForTest(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	apiBaseURL string,
	userAgent string,
	timeout time.Duration,
) *HTTPBeacon {
	return &HTTPBeacon{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		apiBaseURL:   apiBaseURL,
		userAgent:    userAgent,
		timeout:      timeout,
	}
}

func (b *HTTPBeacon) Dispatch(endpoint string, payload any) {
	target := urlutil.JoinBase(b.apiBaseURL, endpoint)

	body, err := json.Marshal(payload)
	if err != nil {
		b.recordDispatchError(target, &DispatchError{
			Message: err.Error(),
			Cause:   ErrCauseEncodeFailure,
		})
		return
	}

	b.inFlight.Add(1)
	go func() {
		defer b.inFlight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		b.send(ctx, target, body)
	}()
}

// Drain blocks until every report dispatched so far has finished.
// It exists for process shutdown; page code never calls it.
func (b *HTTPBeacon) Drain() {
	b.inFlight.Wait()
}

func (b *HTTPBeacon) send(ctx context.Context, target string, body []byte) {
	startTime := time.Now()
	statusCode, err := b.post(ctx, target, body)
	duration := time.Since(startTime)

	b.metadataSink.RecordDispatch(target, statusCode, duration, err == nil)
	if err != nil {
		b.recordDispatchError(target, err)
	}
}

func (b *HTTPBeacon) post(ctx context.Context, target string, body []byte) (int, *DispatchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, &DispatchError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   ErrCauseRequestInvalid,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		cause := ErrCauseNetworkFailure
		if errors.Is(err, context.DeadlineExceeded) {
			cause = ErrCauseTimeout
		}
		return 0, &DispatchError{
			Message: fmt.Sprintf("request failed: %v", err),
			Cause:   cause,
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &DispatchError{
			Message: fmt.Sprintf("collector answered %d", resp.StatusCode),
			Cause:   ErrCauseNon2xx,
		}
	}
	return resp.StatusCode, nil
}

func (b *HTTPBeacon) recordDispatchError(target string, err *DispatchError) {
	b.metadataSink.RecordError(
		time.Now(),
		"tracker",
		"HTTPBeacon.Dispatch",
		mapDispatchErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrEndpoint, target),
		},
	)
}
