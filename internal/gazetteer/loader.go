package gazetteer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrNoSource is returned when neither an artifact path nor URL is set.
	ErrNoSource = errors.New("no gazetteer artifact source configured")

	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// artifactRow is one record of the gazetteer artifact as written by the
// offline import job.
type artifactRow struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Pop     int64    `json:"pop"`
	Admin1  *string  `json:"admin1"`
}

// BackoffConfig controls exponential backoff for artifact downloads.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Loader reads the gazetteer artifact from a local path or an HTTP URL. URL
// fetches run with retries, exponential backoff, and a circuit breaker, so a
// flapping artifact host cannot wedge reloads.
type Loader struct {
	path    string
	url     string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// NewLoader creates a Loader. When both are set, path wins over url.
func NewLoader(path, url string, client *http.Client) *Loader {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gazetteer-artifact",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Loader{
		path:   path,
		url:    url,
		client: client,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// Load reads and decodes the full artifact into city records with sequential
// surrogate ids.
func (l *Loader) Load(ctx context.Context) ([]City, error) {
	switch {
	case l.path != "":
		f, err := os.Open(l.path)
		if err != nil {
			return nil, fmt.Errorf("open gazetteer artifact: %w", err)
		}
		defer f.Close()
		return decodeArtifact(f)
	case l.url != "":
		resp, err := l.fetch(ctx)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		return decodeArtifact(resp.Body)
	}
	return nil, ErrNoSource
}

// decodeArtifact streams the JSON array element by element so a large dump
// never has to sit fully decoded in memory.
func decodeArtifact(r io.Reader) ([]City, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read gazetteer artifact: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("gazetteer artifact must be a JSON array")
	}

	var cities []City
	var id int64
	for dec.More() {
		var row artifactRow
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode gazetteer record %d: %w", id+1, err)
		}
		if row.Name == "" || row.Country == "" {
			return nil, fmt.Errorf("gazetteer record %d: name and country are required", id+1)
		}

		id++
		cities = append(cities, City{
			ID:         id,
			Name:       row.Name,
			Country:    row.Country,
			Latitude:   row.Lat,
			Longitude:  row.Lon,
			Population: row.Pop,
			Region:     row.Admin1,
		})
	}

	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read gazetteer artifact: %w", err)
	}
	return cities, nil
}

// fetch executes the artifact download with retries, exponential backoff,
// and the circuit breaker.
func (l *Loader) fetch(ctx context.Context) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, err
		}

		result, err := l.circuit.Execute(func() (interface{}, error) {
			resp, execErr := l.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			// Handle rate limiting and server errors explicitly.
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If the circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= l.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := l.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if l.backoff.MaxInterval > 0 && delay > l.backoff.MaxInterval {
			delay = l.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
			// next attempt
		}

		attempt++
	}
}
