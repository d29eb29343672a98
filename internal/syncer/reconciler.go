package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/logger"
	"github.com/ahasite/sitediary/internal/storage"
)

// TransportError covers a failed push request or an unparseable response.
// No local mutation has occurred when it is returned; the same pending set is
// retried on the next invocation.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sync push to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ackResponse is the remote acknowledgment body.
type ackResponse struct {
	SyncedIDs []string `json:"syncedIds"`
}

// Result reports one reconciliation pass.
type Result struct {
	Pushed    int      // records transmitted
	SyncedIDs []string // ids the remote durably accepted and we deleted
	Remaining int      // records still pending after the pass
}

// Reconciler pushes pending records to a remote endpoint and deletes exactly
// the acknowledged ones. It does not schedule retries across invocations;
// within one call it retries the push on transport failure with backoff.
type Reconciler struct {
	store       storage.Provider
	client      *http.Client
	token       string
	maxAttempts int
	baseDelay   time.Duration
}

type Option func(*Reconciler)

// WithToken attaches a bearer token to push requests.
func WithToken(token string) Option {
	return func(r *Reconciler) { r.token = token }
}

// WithClient replaces the HTTP client, including its timeout.
func WithClient(client *http.Client) Option {
	return func(r *Reconciler) { r.client = client }
}

// WithMaxAttempts bounds the in-call push retries.
func WithMaxAttempts(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func New(store storage.Provider, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:       store,
		client:      &http.Client{Timeout: constants.DefaultSyncTimeout},
		maxAttempts: constants.SyncMaxAttempts,
		baseDelay:   constants.SyncRetryBaseDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SyncPending pushes the full pending set (everything held locally) to the
// endpoint as one logical request and deletes exactly the records whose id
// appears in the acknowledged subset - never more, never fewer. Re-pushing a
// set the remote has already accepted is safe: the remote acknowledges the
// ids again and the local deletes are idempotent.
func (r *Reconciler) SyncPending(ctx context.Context, endpoint string) (Result, error) {
	pending, err := r.store.GetAll()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read pending records: %w", err)
	}
	if len(pending) == 0 {
		return Result{}, nil
	}

	body, err := json.Marshal(pending)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode pending records: %w", err)
	}

	ack, err := r.push(ctx, endpoint, body)
	if err != nil {
		return Result{Pushed: len(pending), Remaining: len(pending)}, err
	}

	// Delete only what the remote explicitly acknowledged. An id we never
	// pushed is ignored rather than trusted.
	known := make(map[string]bool, len(pending))
	for _, rec := range pending {
		known[rec.ID] = true
	}

	var synced []string
	for _, id := range ack.SyncedIDs {
		if !known[id] {
			logger.Warn("Remote acknowledged an id we did not push", "id", id)
			continue
		}
		if err := r.store.Delete(id); err != nil {
			// The record stays pending and is re-pushed next time.
			logger.Error("Failed to delete acknowledged record", "id", id, "error", err)
			continue
		}
		synced = append(synced, id)
	}

	logger.Info("Sync pass complete", "pushed", len(pending), "acknowledged", len(synced))
	return Result{
		Pushed:    len(pending),
		SyncedIDs: synced,
		Remaining: len(pending) - len(synced),
	}, nil
}

func (r *Reconciler) push(ctx context.Context, endpoint string, body []byte) (ackResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := r.baseDelay * time.Duration(1<<(attempt-2))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ackResponse{}, &TransportError{Endpoint: endpoint, Err: ctx.Err()}
			}
		}

		ack, err := r.pushOnce(ctx, endpoint, body)
		if err == nil {
			return ack, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		logger.Warn("Sync push attempt failed", "attempt", attempt, "error", err)
	}
	return ackResponse{}, &TransportError{Endpoint: endpoint, Err: lastErr}
}

func (r *Reconciler) pushOnce(ctx context.Context, endpoint string, body []byte) (ackResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ackResponse{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return ackResponse{}, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return ackResponse{}, fmt.Errorf("unexpected status %s", res.Status)
	}

	var ack ackResponse
	if err := json.NewDecoder(res.Body).Decode(&ack); err != nil {
		return ackResponse{}, fmt.Errorf("error decoding response: %w", err)
	}
	return ack, nil
}
