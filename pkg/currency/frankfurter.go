package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultRateURL = "https://api.frankfurter.app/latest?from=EUR&to=PLN"

// FrankfurterSource reads an EUR based rates table ({"base":"EUR","rates":{"PLN":4.3}})
type FrankfurterSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

type ratesTable struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (f FrankfurterSource) FetchRate(ctx context.Context) (float64, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	requestContext, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := f.URL
	if url == "" {
		url = DefaultRateURL
	}

	req, err := http.NewRequestWithContext(requestContext, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates endpoint returned HTTP %d", resp.StatusCode)
	}

	var table ratesTable
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return 0, fmt.Errorf("malformed rates table: %w", err)
	}

	if table.Base != "" && table.Base != EUR {
		return 0, fmt.Errorf("unexpected base currency %s", table.Base)
	}

	rate := table.Rates[PLN]
	if rate <= 0 {
		return 0, fmt.Errorf("rates table has no %s rate", PLN)
	}

	return rate, nil
}
