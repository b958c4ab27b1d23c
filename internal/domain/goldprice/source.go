package goldprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Source fetches a live price snapshot. Implementations are treated as
// unreliable; the service wraps every call with the cache and window policy.
type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// HTTPSource reads prices from a JSON endpoint returning gram/quarter/half/
// full fields. Missing sizes are derived from the gram price.
type HTTPSource struct {
	name   string
	url    string
	token  string
	client *http.Client
	now    func() time.Time
}

func NewHTTPSource(name, url, token string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		name:   name,
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

type pricePayload struct {
	Gram    float64 `json:"gram"`
	Quarter float64 `json:"quarter"`
	Half    float64 `json:"half"`
	Full    float64 `json:"full"`
}

func (s *HTTPSource) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: build request: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "apikey "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("%s: unexpected status %d", s.name, resp.StatusCode)
	}

	var payload pricePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w: %v", s.name, ErrParse, err)
	}

	gram := int(payload.Gram)
	quarter := int(payload.Quarter)
	if gram <= 0 && quarter <= 0 {
		return Snapshot{}, fmt.Errorf("%s: %w", s.name, ErrParse)
	}

	return NewSnapshot(gram, quarter, int(payload.Half), int(payload.Full), s.now()), nil
}

// Chain tries sources in order and returns the first snapshot obtained.
type Chain struct {
	sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Fetch(ctx context.Context) (Snapshot, error) {
	if len(c.sources) == 0 {
		return Snapshot{}, ErrNoSources
	}

	var errs []error
	for _, source := range c.sources {
		snapshot, err := source.Fetch(ctx)
		if err == nil {
			return snapshot, nil
		}
		errs = append(errs, err)
	}

	return Snapshot{}, errors.Join(errs...)
}
