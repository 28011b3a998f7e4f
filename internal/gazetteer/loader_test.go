package gazetteer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sampleArtifact = `[
	{"name": "Helsinki", "country": "FI", "lat": 60.1699, "lon": 24.9384, "pop": 658864, "admin1": "Uusimaa"},
	{"name": "Hel", "country": "PL", "lat": 54.6081, "lon": 18.8011, "pop": 3327},
	{"name": "Atlantis", "country": "XX"}
]`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(path, []byte(sampleArtifact), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	loader := NewLoader(path, "", nil)
	cities, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cities) != 3 {
		t.Fatalf("loaded %d records, want 3", len(cities))
	}

	first := cities[0]
	if first.ID != 1 || first.Name != "Helsinki" || first.Country != "FI" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Latitude == nil || *first.Latitude != 60.1699 {
		t.Fatalf("latitude not decoded: %+v", first.Latitude)
	}
	if first.Region == nil || *first.Region != "Uusimaa" {
		t.Fatalf("region not decoded: %+v", first.Region)
	}

	// Low-confidence entry: coordinates and region absent, population zero.
	last := cities[2]
	if last.Latitude != nil || last.Longitude != nil || last.Region != nil {
		t.Fatalf("absent fields must stay nil: %+v", last)
	}
	if last.Population != 0 {
		t.Fatalf("population default = %d, want 0", last.Population)
	}
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleArtifact))
	}))
	defer srv.Close()

	loader := NewLoader("", srv.URL, srv.Client())
	cities, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cities) != 3 {
		t.Fatalf("loaded %d records, want 3", len(cities))
	}
}

// TestLoadRetriesServerErrors: a transient 500 is retried with backoff.
func TestLoadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleArtifact))
	}))
	defer srv.Close()

	loader := NewLoader("", srv.URL, srv.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cities, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("Load after retry: %v", err)
	}
	if len(cities) != 3 {
		t.Fatalf("loaded %d records, want 3", len(cities))
	}
	if calls.Load() < 2 {
		t.Fatalf("server called %d times, want at least 2", calls.Load())
	}
}

func TestLoadNoSource(t *testing.T) {
	loader := NewLoader("", "", nil)
	if _, err := loader.Load(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Fatalf("got %v, want ErrNoSource", err)
	}
}

func TestDecodeArtifactRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not an array", `{"name": "Helsinki"}`},
		{"missing country", `[{"name": "Helsinki"}]`},
		{"missing name", `[{"country": "FI"}]`},
		{"truncated", `[{"name": "Helsinki", "country": "FI"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decodeArtifact(strings.NewReader(tc.body)); err == nil {
				t.Fatalf("expected decode error")
			}
		})
	}
}
