// external/client.go
package external

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gewnthar/countries/config"
	"github.com/gewnthar/countries/models"
)

// APIError marks a failed call to one of the upstream providers: network
// failure, timeout, non-2xx status or a payload that does not decode.
type APIError struct {
	Source string // host being fetched, e.g. "restcountries.com"
	Err    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("could not fetch data from %s: %v", e.Source, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

const (
	SourceCountries     = "restcountries.com"
	SourceExchangeRates = "open.er-api.com"
)

// Client fetches country metadata and USD exchange rates. Both calls are
// bounded by the configured timeout.
type Client struct {
	httpClient       *http.Client
	countriesURL     string
	exchangeRatesURL string
}

func NewClient(cfg config.ExternalAPIConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		countriesURL:     cfg.CountriesURL,
		exchangeRatesURL: cfg.ExchangeRatesURL,
	}
}

// FetchCountries retrieves the full country list from restcountries.
func (c *Client) FetchCountries() ([]models.ExternalCountry, error) {
	var countries []models.ExternalCountry
	if err := c.getJSON(c.countriesURL, SourceCountries, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// exchangeRatesPayload is the envelope returned by open.er-api.com.
type exchangeRatesPayload struct {
	Rates models.ExchangeRates `json:"rates"`
}

// FetchExchangeRates retrieves the USD-based rate table.
func (c *Client) FetchExchangeRates() (models.ExchangeRates, error) {
	var payload exchangeRatesPayload
	if err := c.getJSON(c.exchangeRatesURL, SourceExchangeRates, &payload); err != nil {
		return nil, err
	}
	if payload.Rates == nil {
		return nil, &APIError{Source: SourceExchangeRates, Err: fmt.Errorf("response is missing the rates table")}
	}
	return payload.Rates, nil
}

// getJSON performs a GET and decodes the JSON body into target. Every
// failure mode surfaces as an *APIError for the given source.
func (c *Client) getJSON(url, source string, target interface{}) error {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return &APIError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Source: source, Err: fmt.Errorf("received status code %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &APIError{Source: source, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	return nil
}
