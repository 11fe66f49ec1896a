package web3

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
)

// PendingTx is a handle on a submitted transaction.
type PendingTx struct {
	Hash common.Hash

	// PollInterval is the first delay between receipt lookups; it doubles up to MaxBackoff.
	PollInterval time.Duration
	MaxBackoff   time.Duration

	receipts blockchain.ReceiptReader
}

// NewPendingTx wraps hash with receipt tracking through r.
func NewPendingTx(hash common.Hash, r blockchain.ReceiptReader) *PendingTx {
	return &PendingTx{
		Hash:         hash,
		PollInterval: time.Second,
		MaxBackoff:   15 * time.Second,
		receipts:     r,
	}
}

// Wait blocks until the transaction is mined or ctx is done. A reverted
// transaction is reported as an error.
func (p *PendingTx) Wait(ctx context.Context) (*types.Receipt, error) {
	return blockchain.WaitForTransaction(ctx, p.receipts, p.Hash, p.PollInterval, p.MaxBackoff)
}
