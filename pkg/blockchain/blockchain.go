// Package blockchain provides the EVM transport used by the SDK. It dials an
// Ethereum endpoint, exposes the connected ethclient together with the raw RPC
// client, and includes helpers for signers, receipts and ether/wei amounts.
package blockchain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// EVMClient holds a connected ethclient.Client and the underlying RPC client.
// It satisfies the go-ethereum contract backend interfaces through the
// embedded client.
type EVMClient struct {
	*ethclient.Client
	RPC *rpc.Client

	chainID *big.Int
}

// TransactionArgs are the fields of an eth_sendTransaction request.
type TransactionArgs struct {
	From  common.Address
	To    *common.Address
	Value *big.Int
	Data  []byte
}

// InitEvm dials an Ethereum endpoint and checks it by fetching the chain ID.
// A dialTimeout of zero means no deadline beyond the transport's own.
//
// Parameters:
//   - endpoint: RPC/WS endpoint URL to dial.
//   - dialTimeout: upper bound for dialing and the chain ID request.
//
// Returns a ready-to-use EVMClient or an error.
func InitEvm(endpoint string, dialTimeout time.Duration) (*EVMClient, error) {
	ctx, cancel := withTimeout(context.Background(), dialTimeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		zap.L().Error("Failed to ethdial", zap.Error(err))
		return nil, err
	}

	evm := NewEVMClient(rpcClient)
	chainID, err := evm.ChainID(ctx)
	if err != nil {
		zap.L().Error("Failed to get chain ID", zap.String("endpoint", endpoint), zap.Error(err))
		rpcClient.Close()
		return nil, err
	}
	evm.chainID = chainID
	zap.L().Debug("Connected to EVM endpoint", zap.String("chainID", chainID.String()))

	return evm, nil
}

// NewEVMClient wraps an existing RPC connection.
func NewEVMClient(c *rpc.Client) *EVMClient {
	return &EVMClient{
		Client: ethclient.NewClient(c),
		RPC:    c,
	}
}

// SendTransactionArgs submits an eth_sendTransaction request, letting the node
// sign with the account in args.From.
func (evm *EVMClient) SendTransactionArgs(ctx context.Context, args TransactionArgs) (common.Hash, error) {
	arg := map[string]interface{}{
		"from": args.From,
		"to":   args.To,
	}
	if len(args.Data) > 0 {
		arg["data"] = hexutil.Bytes(args.Data)
	}
	if args.Value != nil {
		arg["value"] = (*hexutil.Big)(args.Value)
	}

	var hash common.Hash
	if err := evm.RPC.CallContext(ctx, &hash, "eth_sendTransaction", arg); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// Close shuts down the RPC connection.
func (evm *EVMClient) Close() {
	if evm == nil || evm.Client == nil {
		return
	}
	evm.Client.Close()
}

// withTimeout returns ctx unchanged if d <= 0, otherwise returns a child context with timeout d.
// The returned cancel function is always non-nil and should be called to release resources.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
