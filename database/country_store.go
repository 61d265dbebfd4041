// database/country_store.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/gewnthar/countries/models"
	"github.com/gewnthar/countries/utils"
)

// sortClauses maps the accepted sort query values to ORDER BY clauses.
// Rows without an estimated GDP sort last in both GDP directions.
var sortClauses = map[string]string{
	"gdp_desc":        "estimated_gdp IS NULL, estimated_gdp DESC",
	"gdp_asc":         "estimated_gdp IS NULL, estimated_gdp ASC",
	"name_asc":        "name ASC",
	"name_desc":       "name DESC",
	"population_desc": "population DESC",
	"population_asc":  "population ASC",
}

// CountryStore owns all SQL against the countries table.
type CountryStore struct {
	db *gorm.DB
}

func NewCountryStore(db *gorm.DB) *CountryStore {
	return &CountryStore{db: db}
}

// UpsertCountries writes a refreshed batch in one transaction. Rows are
// matched by case-insensitive name: a match is overwritten in full, a miss
// is inserted. Returns how many rows were created and updated.
func (s *CountryStore) UpsertCountries(countries []models.Country, refreshedAt time.Time) (created, updated int, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, country := range countries {
			country.LastRefreshedAt = refreshedAt

			var existing models.Country
			findErr := tx.Where("LOWER(name) = ?", utils.NormalizeName(country.Name)).First(&existing).Error
			switch {
			case findErr == nil:
				updates := map[string]interface{}{
					"name":              country.Name,
					"capital":           country.Capital,
					"region":            country.Region,
					"population":        country.Population,
					"currency_code":     country.CurrencyCode,
					"exchange_rate":     country.ExchangeRate,
					"estimated_gdp":     country.EstimatedGDP,
					"flag_url":          country.FlagURL,
					"last_refreshed_at": country.LastRefreshedAt,
				}
				if err := tx.Model(&models.Country{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
					return fmt.Errorf("failed to update country %q: %w", country.Name, err)
				}
				updated++
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				if err := tx.Create(&country).Error; err != nil {
					return fmt.Errorf("failed to insert country %q: %w", country.Name, err)
				}
				created++
			default:
				return fmt.Errorf("failed to look up country %q: %w", country.Name, findErr)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	log.Printf("Store: Upserted %d countries (%d created, %d updated)", len(countries), created, updated)
	return created, updated, nil
}

// List returns stored countries, optionally filtered by exact region and
// currency code and ordered by one of the six sort modes. An empty sort
// preserves persistence order; an unknown one is a validation error.
func (s *CountryStore) List(region, currency, sort string) ([]models.Country, error) {
	query := s.db.Model(&models.Country{})

	if region != "" {
		query = query.Where("region = ?", region)
	}
	if currency != "" {
		query = query.Where("currency_code = ?", currency)
	}
	if sort != "" {
		clause, ok := sortClauses[sort]
		if !ok {
			return nil, models.ErrValidation(fmt.Sprintf("invalid sort value %q", sort))
		}
		query = query.Order(clause)
	}

	var countries []models.Country
	if err := query.Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	return countries, nil
}

// GetByName returns the country whose name matches case-insensitively.
func (s *CountryStore) GetByName(name string) (*models.Country, error) {
	var country models.Country
	err := s.db.Where("LOWER(name) = ?", utils.NormalizeName(name)).First(&country).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrCountryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query country %q: %w", name, err)
	}
	return &country, nil
}

// DeleteByName removes the country whose name matches case-insensitively.
func (s *CountryStore) DeleteByName(name string) error {
	result := s.db.Where("LOWER(name) = ?", utils.NormalizeName(name)).Delete(&models.Country{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete country %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrCountryNotFound
	}
	return nil
}

// Count returns the number of stored countries.
func (s *CountryStore) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Country{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}

// LastRefreshedAt returns the most recent refresh timestamp over all rows,
// or nil when the table is empty.
func (s *CountryStore) LastRefreshedAt() (*time.Time, error) {
	var last sql.NullTime
	err := s.db.Model(&models.Country{}).Select("MAX(last_refreshed_at)").Scan(&last).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query last refresh timestamp: %w", err)
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

// TopByGDP returns the highest-GDP countries, rows without a GDP excluded.
func (s *CountryStore) TopByGDP(limit int) ([]models.Country, error) {
	var countries []models.Country
	err := s.db.
		Where("estimated_gdp IS NOT NULL").
		Order("estimated_gdp DESC").
		Limit(limit).
		Find(&countries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top countries by GDP: %w", err)
	}
	return countries, nil
}
