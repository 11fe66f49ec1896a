package storage

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ipfs/kubo/client/rpc"
	"go.uber.org/zap"
)

const (
	// IpfsPrefix is the URI scheme prefix recognized for IPFS content.
	IpfsPrefix = "ipfs://"
	// FilecoinPrefix is the URI scheme prefix recognized for Filecoin/Lighthouse content.
	FilecoinPrefix = "filecoin://"
	// LighthousePrefix is an alias of FilecoinPrefix.
	LighthousePrefix = "lighthouse://"
)

var specialCharacters = regexp.MustCompile("[^a-zA-Z0-9=]")

// Storage is a minimal interface for backends able to fetch blobs by ID/hash.
type Storage interface {
	ReadFile(ctx context.Context, id string) ([]byte, error)
}

// LighthouseFetcher fetches content from a Lighthouse gateway.
type LighthouseFetcher interface {
	Fetch(ctx context.Context, endpoint, cid string) ([]byte, error)
}

// IPFSFetcher fetches content addressed by CID from IPFS.
type IPFSFetcher interface {
	Fetch(ctx context.Context, hash string) ([]byte, error)
}

// Client aggregates the configured storage backends.
type Client struct {
	// HttpApi is a connected Kubo HTTP API client used for IPFS reads.
	*rpc.HttpApi
	// LighthouseURL is the base URL of the Lighthouse HTTP gateway.
	LighthouseURL string
	// Timeout bounds a single read when the caller's context has no deadline.
	Timeout time.Duration

	once              sync.Once
	lighthouseFetcher LighthouseFetcher
	ipfsFetcher       IPFSFetcher
}

// NewStorage constructs a Storage helper using the provided IPFS API endpoint
// and Lighthouse gateway URL. If the IPFS client fails to initialize, the error
// is logged and IPFS reads will fail; Lighthouse reads still work.
func NewStorage(ipfsURL, lighthouseURL string, timeout time.Duration) *Client {
	s := &Client{
		LighthouseURL:     lighthouseURL,
		Timeout:           timeout,
		lighthouseFetcher: defaultLighthouseFetcher{timeout: timeout},
	}
	api, err := NewIPFSClient(ipfsURL, timeout)
	if err != nil {
		zap.L().Error("Failed to create IPFS client", zap.String("url", ipfsURL), zap.Error(err))
	}
	s.HttpApi = api
	s.ipfsFetcher = newIPFSFetcher(api)
	return s
}

// ReadFile fetches content identified by the given hash/URI. If the input has
// the "filecoin://" or "lighthouse://" prefix, it is retrieved via the
// Lighthouse gateway; otherwise, the content is fetched from IPFS.
func (s *Client) ReadFile(ctx context.Context, hash string) ([]byte, error) {
	s.initFetchers()

	if _, ok := ctx.Deadline(); !ok && s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	if strings.HasPrefix(hash, FilecoinPrefix) || strings.HasPrefix(hash, LighthousePrefix) {
		return s.lighthouseFetcher.Fetch(ctx, s.LighthouseURL, formatHash(hash))
	}
	return s.ipfsFetcher.Fetch(ctx, formatHash(hash))
}

// initFetchers fills in the default fetchers of a Client that was not built
// by NewStorage. It runs once per Client.
func (s *Client) initFetchers() {
	s.once.Do(func() {
		if s.lighthouseFetcher == nil {
			s.lighthouseFetcher = defaultLighthouseFetcher{timeout: s.Timeout}
		}
		if s.ipfsFetcher == nil {
			s.ipfsFetcher = newIPFSFetcher(s.HttpApi)
		}
	})
}

// defaultLighthouseFetcher is the production implementation of LighthouseFetcher.
type defaultLighthouseFetcher struct {
	timeout time.Duration
}

func (f defaultLighthouseFetcher) Fetch(ctx context.Context, endpoint, cid string) ([]byte, error) {
	return GetLighthouseFileCtx(ctx, endpoint, cid, f.timeout)
}

// formatHash removes known URI scheme prefixes and any non-alphanumeric
// characters (except '=') from the supplied hash/URI to produce a clean CID
// string suitable for the underlying backends.
func formatHash(hash string) string {
	hash = strings.TrimSpace(hash)
	for _, prefix := range []string{IpfsPrefix, FilecoinPrefix, LighthousePrefix} {
		hash = strings.ReplaceAll(hash, prefix, "")
	}
	return removeSpecialCharacters(hash)
}

// removeSpecialCharacters strips all characters except ASCII letters, digits,
// and '='.
func removeSpecialCharacters(pString string) string {
	return specialCharacters.ReplaceAllString(pString, "")
}
