package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

// ipfsFetcher is the concrete implementation of IPFSFetcher using Kubo HTTP API.
type ipfsFetcher struct {
	api *rpc.HttpApi
}

// newIPFSFetcher creates a new IPFS fetcher with the given HTTP API client.
func newIPFSFetcher(api *rpc.HttpApi) IPFSFetcher {
	return &ipfsFetcher{api: api}
}

// Fetch reads content by CID with `ipfs cat`. The hash is normalized with
// formatHash and must parse as a CID before the node is contacted.
func (f *ipfsFetcher) Fetch(ctx context.Context, hash string) ([]byte, error) {
	hash = formatHash(hash)
	zap.L().Debug("Hash Used to retrieve from IPFS", zap.String("hash", hash))

	cID, err := ParseCID(hash)
	if err != nil {
		return nil, err
	}
	if f.api == nil {
		return nil, fmt.Errorf("ipfs client not configured")
	}

	resp, err := f.api.Request("cat", cID.String()).Send(ctx)
	if err != nil {
		zap.L().Error("error executing the cat command in ipfs", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}
	defer func() {
		if cerr := resp.Close(); cerr != nil {
			zap.L().Error("error closing response in ipfs", zap.String("hash", hash), zap.Error(cerr))
		}
	}()

	if resp.Error != nil {
		zap.L().Error("ipfs cat returned error", zap.String("hash", hash), zap.Error(resp.Error))
		return nil, resp.Error
	}

	content, err := io.ReadAll(resp.Output)
	if err != nil {
		zap.L().Error("error reading ipfs content", zap.String("hash", hash), zap.Error(err))
		return nil, err
	}
	return content, nil
}

// ParseCID parses a bare CID string (v0 "Qm..." or v1 "bafy...").
func ParseCID(hash string) (cid.Cid, error) {
	c, err := cid.Parse(hash)
	if err != nil {
		return cid.Undef, fmt.Errorf("invalid cid %q: %w", hash, err)
	}
	return c, nil
}

// NewIPFSClient constructs a Kubo HTTP API client pointed at url.
func NewIPFSClient(url string, timeout time.Duration) (*rpc.HttpApi, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{
		Timeout: timeout,
	}
	return rpc.NewURLApiWithClient(url, httpClient)
}
