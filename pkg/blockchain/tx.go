package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// ReceiptReader looks up transaction receipts. ethclient.Client implements it
// and returns ethereum.NotFound while the transaction is pending.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
// The returned TransactOpts can be used to send transactions to the blockchain.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// GetTransactOpts creates a transactor from the EVM client context. The chain
// ID recorded at dial time is used when present; otherwise it is fetched.
func (evm *EVMClient) GetTransactOpts(ctx context.Context, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, fmt.Errorf("private key is required for transactions")
	}

	chainID := evm.chainID
	if chainID == nil {
		var err error
		chainID, err = evm.ChainID(ctx)
		if err != nil {
			zap.L().Error("failed to get chain ID", zap.Error(err))
			return nil, err
		}
	}

	return GetTransactOpts(chainID, pk)
}

// WaitForTransaction polls for a transaction receipt, doubling the delay after
// every miss starting from interval, until the receipt is available, ctx is
// done, or a lookup fails. If maxBackoff is non-zero the delay stops growing
// once it reaches it. A reverted transaction is returned as an error.
func WaitForTransaction(ctx context.Context, r ReceiptReader, txHash common.Hash, interval, maxBackoff time.Duration) (*types.Receipt, error) {
	backoff := interval
	if backoff <= 0 {
		backoff = time.Second
	}
	for {
		receipt, err := r.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("tx reverted: %s", txHash.Hex())
			}
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			if maxBackoff == 0 || backoff < maxBackoff {
				backoff *= 2
			}
			if maxBackoff > 0 && backoff > maxBackoff {
				backoff = maxBackoff
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("receipt error: %w", err)
		}
	}
}
