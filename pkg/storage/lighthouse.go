package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GetLighthouseFileCtx fetches a blob from a Lighthouse HTTP gateway with a
// GET to {lighthouseEndpoint}{cID}. The CID is concatenated directly to the
// endpoint, so include the trailing slash the gateway expects. A timeout of
// zero leaves the deadline to ctx. Non-2xx responses are reported as errors.
func GetLighthouseFileCtx(ctx context.Context, lighthouseEndpoint, cID string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	zap.L().Debug("Getting lighthouse file", zap.String("cid", cID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lighthouseEndpoint+cID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			zap.L().Error("failed to close lighthouse response", zap.Error(cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lighthouse gateway returned %s for %s", resp.Status, cID)
	}
	return io.ReadAll(resp.Body)
}
