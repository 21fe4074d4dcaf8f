package xe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tag1consulting/tag1bot/internal/convert"
	"github.com/tag1consulting/tag1bot/internal/metrics"
)

const defaultBaseURL = "https://xecdapi.xe.com/v1/convert_from.json/"

// Client fetches currency quotes from the XE currency data API.
type Client struct {
	baseURL   string
	accountID string
	apiKey    string
	client    *http.Client
}

// NewClient builds a quote client authenticated with the two XE account
// secrets. Every request carries a bounded timeout so one slow provider
// call cannot stall an entire alert pass.
func NewClient(accountID, apiKey string) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		accountID: accountID,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// convertFromResponse is the subset of the convert_from payload we read.
// Mid is a pointer so a missing rate is distinguishable from zero.
type convertFromResponse struct {
	To []struct {
		QuoteCurrency string   `json:"quotecurrency"`
		Mid           *float64 `json:"mid"`
	} `json:"to"`
}

// GetQuote converts amount units of from into to and returns the result.
// An unrecognized currency code yields *convert.UnknownCurrencyError;
// any transport or decode failure is wrapped and returned as-is.
func (c *Client) GetQuote(ctx context.Context, from, to string, amount float64) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	url := fmt.Sprintf("%s?from=%s&to=%s&amount=%v&crypto=true", c.baseURL, from, to, amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrap(err, "could not build quote request")
	}
	req.Header.Set("Authorization", basicAuth(c.accountID, c.apiKey))

	log.Debugf("requesting quote for %s-%s", from, to)
	metrics.QuoteRequests.Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "quote request failed")
	}
	defer resp.Body.Close()

	// Error responses are still JSON; classification is by body shape,
	// not status code. A body without the rate field means the provider
	// did not recognize one of the codes.
	var parsed convertFromResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, errors.Wrap(err, "invalid quote response")
	}

	if len(parsed.To) == 0 || parsed.To[0].Mid == nil {
		return 0, &convert.UnknownCurrencyError{From: from, To: to}
	}
	return *parsed.To[0].Mid, nil
}

// basicAuth derives the Authorization header from the two XE credentials.
func basicAuth(accountID, apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(accountID+":"+apiKey))
}
