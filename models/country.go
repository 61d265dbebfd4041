// models/country.go
package models

import "time"

// Country is one stored country row, merged from the two external providers.
// Optional fields are pointers so a missing value marshals as JSON null and
// is stored as SQL NULL.
type Country struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Capital         *string   `json:"capital" gorm:"type:varchar(255)"`
	Region          *string   `json:"region" gorm:"type:varchar(100);index"`
	Population      int64     `json:"population" gorm:"not null"`
	CurrencyCode    *string   `json:"currency_code" gorm:"type:varchar(10);index"`
	ExchangeRate    *float64  `json:"exchange_rate" gorm:"type:decimal(20,6)"`
	EstimatedGDP    *float64  `json:"estimated_gdp" gorm:"type:decimal(30,2);index"`
	FlagURL         *string   `json:"flag_url" gorm:"type:text"`
	LastRefreshedAt time.Time `json:"last_refreshed_at" gorm:"not null"`
}

func (Country) TableName() string {
	return "countries"
}

// ExternalCountry is one record as returned by the restcountries v2 API.
type ExternalCountry struct {
	Name       string             `json:"name"`
	Capital    string             `json:"capital"`
	Region     string             `json:"region"`
	Population int64              `json:"population"`
	Flag       string             `json:"flag"`
	Currencies []ExternalCurrency `json:"currencies"`
}

// ExternalCurrency is one entry of a country's currencies array.
type ExternalCurrency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// ExchangeRates maps a currency code to its rate against USD.
type ExchangeRates map[string]float64
