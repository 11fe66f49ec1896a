package oracle

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/shamank/ora-sdk-go/pkg/metrics"
	"github.com/shamank/ora-sdk-go/pkg/storage"
	"github.com/shamank/ora-sdk-go/pkg/web3"
	"go.uber.org/zap"
)

// DefaultNamespace is the namespace the client registers under unless
// Options.Namespace says otherwise.
const DefaultNamespace = "ora"

// Options configure a Client.
type Options struct {
	// PromptAddress is the deployed Prompt contract. Required.
	PromptAddress string
	// Namespace defaults to DefaultNamespace.
	Namespace string
	// ABI defaults to DefaultABI().
	ABI *web3.Descriptor
	// Storage resolves result CIDs in FetchAIResultContent. Optional.
	Storage storage.Storage
	// Metrics records per-operation counters and latencies. Optional.
	Metrics *metrics.Sink
	// Logger defaults to zap.L().
	Logger *zap.Logger
}

// Client is the ORA oracle plugin. Register it on a web3.Context and call it
// through the context's provider.
//
// Every operation re-links the contract binding to the context the client is
// currently attached to, so swapping the context's provider takes effect on
// the next call. Concurrent calls that attach the client to different
// contexts race on that link.
type Client struct {
	namespace string
	contract  *web3.Contract
	storage   storage.Storage
	metrics   *metrics.Sink
	logger    *zap.Logger

	mu   sync.RWMutex
	host *web3.Context
}

// PromptRequest is a decoded promptRequest event.
type PromptRequest struct {
	RequestID   *big.Int
	Sender      common.Address
	Model       Model
	Prompt      string
	TxHash      common.Hash
	BlockNumber uint64
}

// NewClient validates opts and builds an unattached client.
func NewClient(opts Options) (*Client, error) {
	address, err := web3.ParseAddress(opts.PromptAddress)
	if err != nil {
		return nil, err
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	descriptor := opts.ABI
	if descriptor == nil {
		descriptor = DefaultABI()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	return &Client{
		namespace: namespace,
		contract:  web3.NewContract(descriptor, address),
		storage:   opts.Storage,
		metrics:   opts.Metrics,
		logger:    logger.With(zap.String("plugin", namespace)),
	}, nil
}

// Namespace implements web3.Plugin.
func (c *Client) Namespace() string {
	return c.namespace
}

// Link implements web3.Plugin.
func (c *Client) Link(host *web3.Context) {
	c.mu.Lock()
	c.host = host
	c.mu.Unlock()
	c.contract.Link(host)
}

// Context returns the context the client is attached to, or nil.
func (c *Client) Context() *web3.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.host
}

// Address returns the Prompt contract address.
func (c *Client) Address() common.Address {
	return c.contract.Address()
}

// ABI returns the descriptor the client was built with.
func (c *Client) ABI() *web3.Descriptor {
	return c.contract.ABI()
}

func (c *Client) observe(method string, started time.Time, err *error) {
	c.metrics.ObserveCall(method, started, *err)
}

// expectOutputs fails with ErrUnsupportedABI unless the descriptor declares
// method with exactly n outputs.
func (c *Client) expectOutputs(method string, n int) error {
	m, err := c.ABI().Method(method)
	if err != nil {
		return err
	}
	if len(m.Outputs) != n {
		return errors.Wrapf(web3.ErrUnsupportedABI, "%s declares %d outputs, want %d", method, len(m.Outputs), n)
	}
	return nil
}

func (c *Client) relink() {
	c.contract.Link(c.Context())
}

// FetchAIResult reads the stored result of prompt for model. The value is
// returned as the contract produced it: text for language models, a CID for
// image models, and "" while no result exists.
func (c *Client) FetchAIResult(ctx context.Context, model Model, prompt string) (result string, err error) {
	defer c.observe(MethodGetAIResult, time.Now(), &err)
	if err := c.expectOutputs(MethodGetAIResult, 1); err != nil {
		return "", err
	}
	c.relink()

	out, err := c.contract.Call(ctx, MethodGetAIResult, model.BigInt(), prompt)
	if err != nil {
		return "", err
	}
	result, ok := out[0].(string)
	if !ok {
		return "", errors.Errorf("%s returned %T, want string", MethodGetAIResult, out[0])
	}
	c.logger.Debug("ai result fetched",
		zap.Stringer("model", model),
		zap.Int("length", len(result)))
	return result, nil
}

// EstimateFee reads the fee, in wei, the oracle charges for model.
func (c *Client) EstimateFee(ctx context.Context, model Model) (fee *big.Int, err error) {
	defer c.observe(MethodEstimateFee, time.Now(), &err)
	if err := c.expectOutputs(MethodEstimateFee, 1); err != nil {
		return nil, err
	}
	c.relink()

	out, err := c.contract.Call(ctx, MethodEstimateFee, model.BigInt())
	if err != nil {
		return nil, err
	}
	fee, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("%s returned %T, want *big.Int", MethodEstimateFee, out[0])
	}
	c.logger.Debug("fee estimated", zap.Stringer("model", model), zap.String("wei", fee.String()))
	return fee, nil
}

// CalculateAIResult submits a paid calculateAIResult transaction from the
// account from, attaching fee as value. The oracle answers asynchronously;
// once it does, FetchAIResult returns the result.
func (c *Client) CalculateAIResult(ctx context.Context, from string, model Model, prompt string, fee *big.Int) (tx *web3.PendingTx, err error) {
	defer c.observe(MethodCalculateAIResult, time.Now(), &err)

	sender, err := web3.ParseAddress(from)
	if err != nil {
		return nil, err
	}
	c.relink()

	tx, err = c.contract.Send(ctx, MethodCalculateAIResult, web3.SendOpts{From: sender, Value: fee}, model.BigInt(), prompt)
	if err != nil {
		return nil, err
	}
	c.logger.Info("ai result requested",
		zap.Stringer("model", model),
		zap.String("from", sender.Hex()),
		zap.String("tx", tx.Hash.Hex()))
	return tx, nil
}

// FetchAIResultContent resolves the result of prompt through the configured
// storage. It suits models whose result is a storage reference, such as
// StableDiffusion.
func (c *Client) FetchAIResultContent(ctx context.Context, model Model, prompt string) ([]byte, error) {
	if c.storage == nil {
		return nil, ErrNoStorage
	}
	ref, err := c.FetchAIResult(ctx, model, prompt)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, errors.Wrapf(ErrEmptyResult, "model %s", model)
	}

	content, err := c.storage.ReadFile(ctx, ref)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read result %s", ref)
	}
	return content, nil
}

// ParsePromptRequest decodes the promptRequest event the bound contract
// emitted in receipt.
func (c *Client) ParsePromptRequest(receipt *types.Receipt) (*PromptRequest, error) {
	if receipt == nil {
		return nil, errors.New("nil receipt")
	}
	event, ok := c.ABI().Event(EventPromptRequest)
	if !ok {
		return nil, errors.Wrapf(web3.ErrUnsupportedABI, "provided abi doesn't have %s event", EventPromptRequest)
	}

	for _, log := range receipt.Logs {
		if log == nil || log.Address != c.Address() || len(log.Topics) == 0 || log.Topics[0] != event.ID {
			continue
		}
		values, err := event.Inputs.Unpack(log.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", EventPromptRequest)
		}
		if len(values) != 4 {
			return nil, errors.Errorf("%s has %d fields, want 4", EventPromptRequest, len(values))
		}
		requestID, ok1 := values[0].(*big.Int)
		sender, ok2 := values[1].(common.Address)
		model, ok3 := values[2].(*big.Int)
		prompt, ok4 := values[3].(string)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, errors.Errorf("unexpected %s field types", EventPromptRequest)
		}
		if !model.IsUint64() {
			return nil, errors.Errorf("%s model id %s out of range", EventPromptRequest, model)
		}
		return &PromptRequest{
			RequestID:   requestID,
			Sender:      sender,
			Model:       Model(model.Uint64()),
			Prompt:      prompt,
			TxHash:      log.TxHash,
			BlockNumber: log.BlockNumber,
		}, nil
	}
	return nil, errors.Wrapf(ErrEventNotFound, "%s in tx %s", EventPromptRequest, receipt.TxHash.Hex())
}
