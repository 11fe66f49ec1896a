package web3

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SendOpts carries the sender and attached value of a state-mutating call.
type SendOpts struct {
	From  common.Address
	Value *big.Int
}

// Contract binds a Descriptor to a deployed address. It issues calls through
// whichever Context it was last linked to.
type Contract struct {
	abi     *Descriptor
	address common.Address

	mu   sync.RWMutex
	host *Context
}

// NewContract creates an unlinked contract handle.
func NewContract(d *Descriptor, address common.Address) *Contract {
	return &Contract{abi: d, address: address}
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract descriptor.
func (c *Contract) ABI() *Descriptor {
	return c.abi
}

// Link associates the contract with host.
func (c *Contract) Link(host *Context) {
	c.mu.Lock()
	c.host = host
	c.mu.Unlock()
}

// Context returns the linked Context, or nil.
func (c *Contract) Context() *Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.host
}

func (c *Contract) linked() (*Context, error) {
	host := c.Context()
	if host == nil || host.Provider() == nil {
		return nil, ErrNotLinked
	}
	return host, nil
}

// Call runs a read-only eth_call of method against the latest block and
// returns the decoded outputs. Provider errors are returned unchanged.
func (c *Contract) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	m, err := c.abi.Method(method)
	if err != nil {
		return nil, err
	}
	host, err := c.linked()
	if err != nil {
		return nil, err
	}

	input, err := c.abi.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to pack %s arguments", method)
	}

	to := c.address
	output, err := host.Provider().CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		host.logger.Debug("contract call failed", zap.String("method", method), zap.Error(err))
		return nil, err
	}
	return m.Outputs.Unpack(output)
}

// Send submits a transaction invoking method. It signs locally when the linked
// Context has a signer for opts.From, and otherwise asks the provider to send
// from a node-managed account. Provider errors are returned unchanged.
func (c *Contract) Send(ctx context.Context, method string, opts SendOpts, args ...any) (*PendingTx, error) {
	if _, err := c.abi.Method(method); err != nil {
		return nil, err
	}
	host, err := c.linked()
	if err != nil {
		return nil, err
	}
	provider := host.Provider()

	if signer := host.Signer(); signer != nil && signer.From == opts.From {
		txOpts := *signer
		txOpts.Context = ctx
		txOpts.Value = opts.Value

		bound := bind.NewBoundContract(c.address, c.abi.abi, provider, provider, nil)
		tx, err := bound.Transact(&txOpts, method, args...)
		if err != nil {
			return nil, err
		}
		host.logger.Debug("transaction signed locally",
			zap.String("method", method),
			zap.String("hash", tx.Hash().Hex()))
		return NewPendingTx(tx.Hash(), provider), nil
	}

	sender, ok := provider.(AccountSender)
	if !ok {
		return nil, errors.Wrapf(ErrNoSender, "cannot send from %s", opts.From.Hex())
	}

	input, err := c.abi.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to pack %s arguments", method)
	}
	to := c.address
	hash, err := sender.SendTransactionArgs(ctx, TransactionArgs{
		From:  opts.From,
		To:    &to,
		Value: opts.Value,
		Data:  input,
	})
	if err != nil {
		return nil, err
	}
	host.logger.Debug("transaction sent from node account",
		zap.String("method", method),
		zap.String("hash", hash.Hex()))
	return NewPendingTx(hash, provider), nil
}
