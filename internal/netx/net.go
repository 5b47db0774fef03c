// Package netx supplies the network-status signal the UI threads into the
// storage manager's write calls.
package netx

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

// Checker probes a well-known endpoint to decide whether the device looks
// online. The result is advisory: the storage layer trusts it to skip remote
// attempts that would only hang, and degrades to the queue when it is wrong.
type Checker struct {
	url    string
	client *http.Client
}

func NewChecker(url string) *Checker {
	return &Checker{
		url:    url,
		client: &http.Client{Timeout: probeTimeout},
	}
}

// Online issues a HEAD request against the probe endpoint. Any response,
// including an HTTP error status, counts as online; only transport failures
// count as offline.
func (c *Checker) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
