package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestGetTransactOpts(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	chainID := big.NewInt(1)

	opts, err := GetTransactOpts(chainID, priv)
	if err != nil {
		t.Fatalf("GetTransactOpts failed: %v", err)
	}

	if opts == nil {
		t.Fatal("expected non-nil TransactOpts")
	}

	if opts.From != crypto.PubkeyToAddress(priv.PublicKey) {
		t.Fatalf("unexpected From address: got %s, want %s",
			opts.From.Hex(),
			crypto.PubkeyToAddress(priv.PublicKey).Hex())
	}
}

func TestGetTransactOpts_NilKey(t *testing.T) {
	chainID := big.NewInt(1)

	defer func() {
		_ = recover() // a nil key may panic inside go-ethereum
	}()

	_, _ = GetTransactOpts(chainID, nil)
}

func TestGetTransactOpts_NilChainID(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	opts, err := GetTransactOpts(nil, priv)
	if err == nil {
		t.Fatal("expected error for nil chainID")
	}
	if opts != nil {
		t.Fatal("expected nil opts on error")
	}
}

func TestGetTransactOpts_DifferentChainIDs(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	testCases := []struct {
		name    string
		chainID *big.Int
	}{
		{"Mainnet", big.NewInt(1)},
		{"Sepolia", big.NewInt(11155111)},
		{"Custom", big.NewInt(999)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := GetTransactOpts(tc.chainID, priv)
			if err != nil {
				t.Fatalf("GetTransactOpts failed for %s: %v", tc.name, err)
			}
			if opts == nil {
				t.Fatalf("expected non-nil opts for %s", tc.name)
			}
		})
	}
}

func TestEVMClient_GetTransactOpts_NilPrivateKey(t *testing.T) {
	evm := &EVMClient{}

	opts, err := evm.GetTransactOpts(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for nil private key")
	}
	if opts != nil {
		t.Fatal("expected nil opts")
	}

	expectedErr := "private key is required for transactions"
	if err.Error() != expectedErr {
		t.Fatalf("unexpected error: got %q, want %q", err.Error(), expectedErr)
	}
}

func TestEVMClient_GetTransactOpts_CachedChainID(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	evm := &EVMClient{chainID: big.NewInt(11155111)}
	opts, err := evm.GetTransactOpts(context.Background(), priv)
	if err != nil {
		t.Fatalf("GetTransactOpts failed: %v", err)
	}
	if opts.From != crypto.PubkeyToAddress(priv.PublicKey) {
		t.Fatalf("unexpected From address: %s", opts.From.Hex())
	}
}

type receiptSeq struct {
	calls int
	steps []func() (*types.Receipt, error)
}

func (r *receiptSeq) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	i := r.calls
	r.calls++
	if i >= len(r.steps) {
		i = len(r.steps) - 1
	}
	return r.steps[i]()
}

func notFound() (*types.Receipt, error) { return nil, ethereum.NotFound }

func TestWaitForTransaction_MinedAfterPending(t *testing.T) {
	mined := &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)}
	r := &receiptSeq{steps: []func() (*types.Receipt, error){
		notFound,
		notFound,
		func() (*types.Receipt, error) { return mined, nil },
	}}

	got, err := WaitForTransaction(context.Background(), r, common.Hash{1}, time.Millisecond, 4*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitForTransaction error: %v", err)
	}
	if got != mined {
		t.Fatal("expected mined receipt")
	}
	if r.calls != 3 {
		t.Fatalf("expected 3 receipt lookups, got %d", r.calls)
	}
}

func TestWaitForTransaction_Reverted(t *testing.T) {
	r := &receiptSeq{steps: []func() (*types.Receipt, error){
		func() (*types.Receipt, error) { return &types.Receipt{Status: types.ReceiptStatusFailed}, nil },
	}}

	got, err := WaitForTransaction(context.Background(), r, common.Hash{2}, time.Millisecond, 0)
	if err == nil {
		t.Fatal("expected error for reverted tx")
	}
	if got == nil {
		t.Fatal("expected reverted receipt to be returned")
	}
}

func TestWaitForTransaction_ContextDone(t *testing.T) {
	r := &receiptSeq{steps: []func() (*types.Receipt, error){notFound}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := WaitForTransaction(ctx, r, common.Hash{3}, 5*time.Millisecond, 5*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestWaitForTransaction_LookupError(t *testing.T) {
	boom := errors.New("connection refused")
	r := &receiptSeq{steps: []func() (*types.Receipt, error){
		func() (*types.Receipt, error) { return nil, boom },
	}}

	_, err := WaitForTransaction(context.Background(), r, common.Hash{4}, time.Millisecond, 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}
