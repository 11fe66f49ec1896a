// Package ethrpc holds chain test doubles: a recording contract backend and
// an in-process JSON-RPC node.
package ethrpc

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
)

// Backend is the set of node methods a contract handle may use.
type Backend interface {
	ethereum.ContractCaller
	bind.ContractTransactor
	bind.DeployBackend
}

// Spy is a Backend that records every call and transaction it receives.
// CallFunc and SendFunc, when set, decide the responses.
type Spy struct {
	// CallFunc answers CallContract. The default returns empty output.
	CallFunc func(msg ethereum.CallMsg) ([]byte, error)
	// SendErr fails SendTransaction and SendTransactionArgs.
	SendErr error
	// Receipts are served by TransactionReceipt; missing hashes are NotFound.
	Receipts map[common.Hash]*types.Receipt

	mu     sync.Mutex
	calls  []ethereum.CallMsg
	blocks []*big.Int
	sends  []blockchain.TransactionArgs
	signed []*types.Transaction
}

var _ Backend = (*Spy)(nil)

// Calls returns the recorded eth_call messages.
func (s *Spy) Calls() []ethereum.CallMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ethereum.CallMsg(nil), s.calls...)
}

// CallBlocks returns the block argument of each recorded call.
func (s *Spy) CallBlocks() []*big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*big.Int(nil), s.blocks...)
}

// Sends returns the recorded node-account transactions.
func (s *Spy) Sends() []blockchain.TransactionArgs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]blockchain.TransactionArgs(nil), s.sends...)
}

// Signed returns the recorded locally signed transactions.
func (s *Spy) Signed() []*types.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*types.Transaction(nil), s.signed...)
}

// Total is the number of network requests that reached the spy, excluding
// the reads bind performs while preparing a signed transaction.
func (s *Spy) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls) + len(s.sends) + len(s.signed)
}

func (s *Spy) CallContract(_ context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, msg)
	s.blocks = append(s.blocks, block)
	fn := s.CallFunc
	s.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(msg)
}

// SendTransactionArgs makes Spy an account sender. The returned hash is
// derived from the arguments.
func (s *Spy) SendTransactionArgs(_ context.Context, args blockchain.TransactionArgs) (common.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		return common.Hash{}, s.SendErr
	}
	s.sends = append(s.sends, args)
	return crypto.Keccak256Hash(args.From.Bytes(), args.Data, big.NewInt(int64(len(s.sends))).Bytes()), nil
}

func (s *Spy) SendTransaction(_ context.Context, tx *types.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SendErr != nil {
		return s.SendErr
	}
	s.signed = append(s.signed, tx)
	return nil
}

func (s *Spy) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.Receipts[hash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (s *Spy) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (s *Spy) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (s *Spy) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, nil
}

func (s *Spy) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (s *Spy) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

func (s *Spy) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (s *Spy) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 100_000, nil
}
