// services/refresh_service.go
package services

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gewnthar/countries/models"
)

// CountryFetcher is the slice of the external client the refresh needs.
type CountryFetcher interface {
	FetchCountries() ([]models.ExternalCountry, error)
	FetchExchangeRates() (models.ExchangeRates, error)
}

// RefreshStore is the slice of the country store the refresh needs.
type RefreshStore interface {
	UpsertCountries(countries []models.Country, refreshedAt time.Time) (created, updated int, err error)
	Count() (int64, error)
	TopByGDP(limit int) ([]models.Country, error)
}

// SummaryRenderer regenerates the cached summary image.
type SummaryRenderer interface {
	GenerateSummaryImage(totalCountries int64, topCountries []models.Country, lastRefreshed time.Time) error
}

// RefreshService runs the full refresh: fetch both upstream payloads, merge
// them into country records, upsert the batch and regenerate the summary
// image. Nothing is written unless both fetches succeed.
type RefreshService struct {
	fetcher CountryFetcher
	store   RefreshStore
	images  SummaryRenderer
	rng     *rand.Rand
}

// NewRefreshService wires a refresh service. A nil rng gets a time-seeded
// source; tests pass a fixed seed to pin the GDP multiplier.
func NewRefreshService(fetcher CountryFetcher, store RefreshStore, images SummaryRenderer, rng *rand.Rand) *RefreshService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RefreshService{fetcher: fetcher, store: store, images: images, rng: rng}
}

// Refresh performs one refresh cycle and reports the upsert counts.
func (s *RefreshService) Refresh() (*models.RefreshResponse, error) {
	countries, err := s.fetcher.FetchCountries()
	if err != nil {
		return nil, err
	}
	rates, err := s.fetcher.FetchExchangeRates()
	if err != nil {
		return nil, err
	}

	refreshedAt := time.Now().UTC()
	records := s.MergeCountries(countries, rates)

	created, updated, err := s.store.UpsertCountries(records, refreshedAt)
	if err != nil {
		return nil, err
	}

	// The image is a cached artifact, not part of the refresh contract: a
	// rendering failure keeps the previous image and does not fail the call.
	if err := s.regenerateSummaryImage(refreshedAt); err != nil {
		log.Printf("ERROR Service: Failed to regenerate summary image: %v", err)
	}

	return &models.RefreshResponse{
		Message:         "Countries refreshed successfully",
		TotalCountries:  len(records),
		Created:         created,
		Updated:         updated,
		LastRefreshedAt: refreshedAt,
	}, nil
}

// MergeCountries joins each external country record to its exchange rate
// and computes the estimated GDP:
//   - no currency (or no currency code) -> code nil, rate nil, GDP 0
//   - code with no known rate           -> rate nil, GDP nil
//   - code with rate r > 0              -> GDP = population * m / r,
//     m drawn uniformly from [1000, 2000) per record
func (s *RefreshService) MergeCountries(countries []models.ExternalCountry, rates models.ExchangeRates) []models.Country {
	records := make([]models.Country, 0, len(countries))
	for _, raw := range countries {
		if raw.Name == "" {
			log.Printf("Service: Skipping country record with empty name")
			continue
		}
		record := models.Country{
			Name:       raw.Name,
			Capital:    optionalString(raw.Capital),
			Region:     optionalString(raw.Region),
			Population: raw.Population,
			FlagURL:    optionalString(raw.Flag),
		}

		code := firstCurrencyCode(raw.Currencies)
		if code == "" {
			zero := 0.0
			record.EstimatedGDP = &zero
			records = append(records, record)
			continue
		}
		record.CurrencyCode = &code

		rate, ok := rates[code]
		if !ok {
			// Rate table has no entry for this currency: both stay null.
			records = append(records, record)
			continue
		}
		record.ExchangeRate = &rate
		if rate > 0 {
			multiplier := 1000 + s.rng.Float64()*1000
			gdp := round2(float64(raw.Population) * multiplier / rate)
			record.EstimatedGDP = &gdp
		}
		records = append(records, record)
	}
	return records
}

func (s *RefreshService) regenerateSummaryImage(refreshedAt time.Time) error {
	total, err := s.store.Count()
	if err != nil {
		return err
	}
	top, err := s.store.TopByGDP(5)
	if err != nil {
		return err
	}
	return s.images.GenerateSummaryImage(total, top, refreshedAt)
}

func firstCurrencyCode(currencies []models.ExternalCurrency) string {
	if len(currencies) == 0 {
		return ""
	}
	return currencies[0].Code
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
