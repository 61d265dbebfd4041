// external/client_test.go
package external

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gewnthar/countries/config"
)

func newTestClient(countriesURL, ratesURL string, timeout time.Duration) *Client {
	return NewClient(config.ExternalAPIConfig{
		CountriesURL:     countriesURL,
		ExchangeRatesURL: ratesURL,
		Timeout:          timeout,
	})
}

func TestFetchCountries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"Nigeria","capital":"Abuja","region":"Africa","population":206139589,
			 "flag":"https://flagcdn.com/ng.svg",
			 "currencies":[{"code":"NGN","name":"Nigerian naira","symbol":"₦"}]},
			{"name":"Antarctica","population":1000,"currencies":[]}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL, 5*time.Second)
	countries, err := client.FetchCountries()
	require.NoError(t, err)
	require.Len(t, countries, 2)

	assert.Equal(t, "Nigeria", countries[0].Name)
	assert.Equal(t, "Abuja", countries[0].Capital)
	assert.Equal(t, int64(206139589), countries[0].Population)
	require.Len(t, countries[0].Currencies, 1)
	assert.Equal(t, "NGN", countries[0].Currencies[0].Code)
	assert.Empty(t, countries[1].Currencies)
}

func TestFetchExchangeRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"NGN":1600.5,"EUR":0.92}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL, 5*time.Second)
	rates, err := client.FetchExchangeRates()
	require.NoError(t, err)
	assert.Equal(t, 1600.5, rates["NGN"])
	assert.Equal(t, 0.92, rates["EUR"])
}

func TestFetchExchangeRatesMissingRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL, 5*time.Second)
	_, err := client.FetchExchangeRates()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, SourceExchangeRates, apiErr.Source)
}

func TestFetchCountriesNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL, 5*time.Second)
	_, err := client.FetchCountries()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, SourceCountries, apiErr.Source)
	assert.Contains(t, apiErr.Error(), "status code 502")
}

func TestFetchCountriesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL, 5*time.Second)
	_, err := client.FetchCountries()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestFetchCountriesTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := newTestClient(server.URL, server.URL, 50*time.Millisecond)
	_, err := client.FetchCountries()

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, errors.Unwrap(apiErr) != nil)
}
