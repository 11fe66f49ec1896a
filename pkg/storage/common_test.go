package storage

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestFormatHash_SanitizesPrefixes(t *testing.T) {
	input := "ipfs://Qm-AbC=123!?#"
	if got := formatHash(input); got != "QmAbC=123" {
		t.Fatalf("formatHash returned %q, want %q", got, "QmAbC=123")
	}

	input = "filecoin://bafy-BeEf==/metadata"
	if got := formatHash(input); got != "bafyBeEf==metadata" {
		t.Fatalf("formatHash returned %q, want %q", got, "bafyBeEf==metadata")
	}

	input = "  lighthouse://QmXyz \n"
	if got := formatHash(input); got != "QmXyz" {
		t.Fatalf("formatHash returned %q, want %q", got, "QmXyz")
	}
}

func TestRemoveSpecialCharacters(t *testing.T) {
	input := "Qm-._$Hello=World"
	if got := removeSpecialCharacters(input); got != "QmHello=World" {
		t.Fatalf("removeSpecialCharacters returned %q, want %q", got, "QmHello=World")
	}
}

func TestReadFileSelectsLighthouse(t *testing.T) {
	for _, ref := range []string{"filecoin://CID123", "lighthouse://CID123"} {
		called := false
		fetcher := lighthouseFetcherFunc(func(_ context.Context, endpoint, cid string) ([]byte, error) {
			called = true
			if endpoint != "https://gw/" {
				t.Fatalf("unexpected endpoint: %s", endpoint)
			}
			if cid != "CID123" {
				t.Fatalf("unexpected cid: %s", cid)
			}
			return []byte("ok"), nil
		})

		s := &Client{
			LighthouseURL:     "https://gw/",
			lighthouseFetcher: fetcher,
			ipfsFetcher: ipfsFetcherFunc(func(context.Context, string) ([]byte, error) {
				t.Fatal("ipfs fetcher must not be used")
				return nil, nil
			}),
		}
		data, err := s.ReadFile(context.Background(), ref)
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", ref, err)
		}
		if string(data) != "ok" {
			t.Fatalf("unexpected data: %q", data)
		}
		if !called {
			t.Fatalf("expected lighthouse fetch to be used for %s", ref)
		}
	}
}

func TestReadFileSelectsIPFS(t *testing.T) {
	var got string
	s := &Client{
		ipfsFetcher: ipfsFetcherFunc(func(_ context.Context, hash string) ([]byte, error) {
			got = hash
			return []byte("png"), nil
		}),
	}
	data, err := s.ReadFile(context.Background(), "ipfs://QmHash")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "png" {
		t.Fatalf("unexpected data: %q", data)
	}
	if got != "QmHash" {
		t.Fatalf("fetcher got %q, want %q", got, "QmHash")
	}
}

func TestReadFileIPFSError(t *testing.T) {
	s := &Client{
		ipfsFetcher: ipfsFetcherFunc(func(context.Context, string) ([]byte, error) {
			return nil, fmt.Errorf("ipfs failure")
		}),
	}
	if _, err := s.ReadFile(context.Background(), "QmHash"); err == nil {
		t.Fatal("expected error from IPFS read")
	}
}

func TestReadFileAppliesTimeout(t *testing.T) {
	s := &Client{
		Timeout: time.Minute,
		ipfsFetcher: ipfsFetcherFunc(func(ctx context.Context, _ string) ([]byte, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatal("expected a deadline on the fetch context")
			}
			return nil, nil
		}),
	}
	if _, err := s.ReadFile(context.Background(), "QmHash"); err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
}

type lighthouseFetcherFunc func(context.Context, string, string) ([]byte, error)

func (f lighthouseFetcherFunc) Fetch(ctx context.Context, endpoint, cid string) ([]byte, error) {
	return f(ctx, endpoint, cid)
}

type ipfsFetcherFunc func(context.Context, string) ([]byte, error)

func (f ipfsFetcherFunc) Fetch(ctx context.Context, hash string) ([]byte, error) {
	return f(ctx, hash)
}
