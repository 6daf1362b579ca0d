package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AngelCh415/creator-payout/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// maxBundleBytes caps a downloaded bundle.
const maxBundleBytes = 32 << 20

// getWithRetry fetches url up to three times with exponential backoff.
// A 4xx response is not retried. It returns the body and the X-Signature
// header of the first 2xx response.
func getWithRetry(ctx context.Context, c HTTPClient, url string) ([]byte, string, error) {
	var body []byte
	var sig string
	err := utils.NewBackoff(100*time.Millisecond, 2).Do(ctx, func(int) error {
		var err error
		body, sig, err = getOnce(ctx, c, url)
		var se *statusError
		if errors.As(err, &se) && se.code >= 400 && se.code < 500 {
			return utils.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return body, sig, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string { return fmt.Sprintf("non-2xx: %d body=%s", e.code, e.body) }

func getOnce(ctx context.Context, c HTTPClient, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", &statusError{code: resp.StatusCode, body: string(b)}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes))
	if err != nil {
		return nil, "", err
	}
	return b, resp.Header.Get(SignatureHeader), nil
}
