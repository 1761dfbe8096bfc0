package matrix

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/platform/obs"

	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL         = "https://api.openrouteservice.org"
	DefaultProfile         = "driving-car"
	DefaultTimeUnitSeconds = 60
)

// Cache stores whole travel-time matrices under an opaque key.
type Cache interface {
	Get(ctx context.Context, key string) (domain.TravelMatrix, bool, error)
	Put(ctx context.Context, key string, m domain.TravelMatrix) error
}

type ORSConfig struct {
	APIKey          string
	BaseURL         string
	Profile         string
	TimeUnitSeconds int
	// Client timeout; zero means 10s.
	Timeout time.Duration
}

// ORSProvider builds the travel-time matrix from OpenRouteService durations,
// rounded up to whole time units. Whole matrices are cached when a Cache is
// configured.
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	profile     string
	timeUnit    int
	cache       Cache
	maxAttempts int
	backoff     time.Duration
}

func NewORSProvider(cfg ORSConfig, cache Cache) (*ORSProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	if cfg.TimeUnitSeconds <= 0 {
		cfg.TimeUnitSeconds = DefaultTimeUnitSeconds
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &ORSProvider{
		session:     &http.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		profile:     cfg.Profile,
		timeUnit:    cfg.TimeUnitSeconds,
		cache:       cache,
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}, nil
}

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

func (o *ORSProvider) TravelTimes(ctx context.Context, locations []domain.Location) (_ domain.TravelMatrix, err error) {
	defer obs.Time(ctx, "ors.TravelTimes")(&err)

	if len(locations) == 0 {
		return nil, fmt.Errorf("ors matrix: %w: no locations", domain.ErrInvalidProblem)
	}

	key := o.cacheKey(locations)
	if o.cache != nil {
		m, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("matrix cache read failed")
		} else if ok && m.Size() == len(locations) {
			return m, nil
		}
	}

	m, err := o.fetchMatrix(ctx, locations)
	if err != nil {
		return nil, err
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, m); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("matrix cache write failed")
		}
	}
	return m, nil
}

// fetchMatrix retrieves the full N×N duration matrix in one call.
func (o *ORSProvider) fetchMatrix(ctx context.Context, locations []domain.Location) (domain.TravelMatrix, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	coords := make([][]float64, 0, len(locations))
	for _, l := range locations {
		coords = append(coords, l.Coordinates.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{Locations: coords, Metrics: []string{"duration"}})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	n := len(locations)
	if len(mr.Durations) != n {
		return nil, fmt.Errorf("expected %d duration rows, got %d", n, len(mr.Durations))
	}

	out := make(domain.TravelMatrix, n)
	for i, row := range mr.Durations {
		if len(row) != n {
			return nil, fmt.Errorf("duration row %d has %d entries, want %d", i, len(row), n)
		}
		out[i] = make([]int, n)
		for j, secs := range row {
			if secs == nil {
				return nil, fmt.Errorf("no route from %q to %q", locations[i].Name, locations[j].Name)
			}
			out[i][j] = o.toUnits(*secs)
		}
	}
	return out, nil
}

// toUnits rounds up so a travel time is never understated.
func (o *ORSProvider) toUnits(seconds float64) int {
	return int(math.Ceil(seconds / float64(o.timeUnit)))
}

func (o *ORSProvider) cacheKey(locations []domain.Location) string {
	h := sha256.New()
	h.Write([]byte(o.profile))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(o.timeUnit)))
	for _, l := range locations {
		fmt.Fprintf(h, "|%.6f,%.6f", l.Coordinates.Lon, l.Coordinates.Lat)
	}
	return hex.EncodeToString(h.Sum(nil))
}
