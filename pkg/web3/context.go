package web3

import (
	"context"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
	"go.uber.org/zap"
)

// Provider is the chain transport a Context talks to. *blockchain.EVMClient
// satisfies it.
type Provider interface {
	ethereum.ContractCaller
	bind.ContractTransactor
	bind.DeployBackend
}

// TransactionArgs are the fields of an eth_sendTransaction request.
type TransactionArgs = blockchain.TransactionArgs

// AccountSender is an optional Provider capability: submitting a transaction
// from an account the node manages, so that no key is held locally.
type AccountSender interface {
	SendTransactionArgs(ctx context.Context, args TransactionArgs) (common.Hash, error)
}

// Plugin is an extension that attaches itself to a Context under a namespace.
// Link is called on registration and whenever the plugin is re-attached.
type Plugin interface {
	Namespace() string
	Link(c *Context)
}

// Context is a shared connection context: the active provider, an optional
// local signer, and the plugins registered on it.
type Context struct {
	mu       sync.RWMutex
	provider Provider
	signer   *bind.TransactOpts
	plugins  map[string]Plugin
	logger   *zap.Logger
}

// ContextOption customizes a Context at construction.
type ContextOption func(*Context)

// WithSigner makes Contract.Send sign transactions from signer.From locally.
func WithSigner(signer *bind.TransactOpts) ContextOption {
	return func(c *Context) {
		c.signer = signer
	}
}

// WithLogger sets the logger used by the Context. Defaults to zap.L().
func WithLogger(l *zap.Logger) ContextOption {
	return func(c *Context) {
		c.logger = l
	}
}

// NewContext creates a Context over p.
func NewContext(p Provider, opts ...ContextOption) *Context {
	c := &Context{
		provider: p,
		plugins:  make(map[string]Plugin),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.L()
	}
	return c
}

// Provider returns the currently active transport.
func (c *Context) Provider() Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider
}

// SetProvider swaps the transport. Contracts linked to c use the new provider
// from their next call on.
func (c *Context) SetProvider(p Provider) {
	c.mu.Lock()
	c.provider = p
	c.mu.Unlock()
	c.logger.Debug("context provider replaced")
}

// Signer returns the local signer, or nil when transactions go through node accounts.
func (c *Context) Signer() *bind.TransactOpts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.signer
}

// RegisterPlugin links p to c and exposes it under p.Namespace().
func (c *Context) RegisterPlugin(p Plugin) error {
	ns := p.Namespace()
	if ns == "" {
		return errors.New("plugin namespace must not be empty")
	}

	c.mu.Lock()
	if _, ok := c.plugins[ns]; ok {
		c.mu.Unlock()
		return errors.Wrapf(ErrPluginExists, "namespace %q", ns)
	}
	c.plugins[ns] = p
	c.mu.Unlock()

	p.Link(c)
	c.logger.Debug("plugin registered", zap.String("namespace", ns))
	return nil
}

// Plugin returns the plugin registered under ns.
func (c *Context) Plugin(ns string) (Plugin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.plugins[ns]
	return p, ok
}

// Plugins lists the registered namespaces in sorted order.
func (c *Context) Plugins() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.plugins))
	for ns := range c.plugins {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the plugin registered under ns as a T.
func Resolve[T Plugin](c *Context, ns string) (T, error) {
	var zero T
	p, ok := c.Plugin(ns)
	if !ok {
		return zero, errors.Wrapf(ErrPluginNotFound, "namespace %q", ns)
	}
	t, ok := p.(T)
	if !ok {
		return zero, errors.Errorf("plugin %q has type %T", ns, p)
	}
	return t, nil
}
