package http

import (
	"math"
	"time"
)

// BackoffConfig controls retry behaviour for a request. A nil config means a
// single attempt with no retries.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// retryableStatus reports whether a status code is worth retrying. Client
// errors other than 429 are not.
func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}

// doRequestWithBackoff sends the request, retrying transport failures and
// retryable status codes with exponential delay when a backoff is configured.
func (hc *Client) doRequestWithBackoff(method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if backoff == nil || backoff.MaxRetries <= 0 {
		return hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
	}

	var (
		success any
		errResp any
		status  int
		err     error
	)

	for attempt := 0; ; attempt++ {
		success, errResp, status, err = hc.doRequest(method, path, queryParams, headers, body, successResp, errorResp)
		if err == nil {
			return success, errResp, status, nil
		}
		if status != 0 && !retryableStatus(status) {
			return success, errResp, status, err
		}
		if attempt >= backoff.MaxRetries {
			return success, errResp, status, err
		}

		delay := backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if backoff.MaxInterval > 0 && delay > backoff.MaxInterval {
			delay = backoff.MaxInterval
		}
		time.Sleep(delay)
	}
}
