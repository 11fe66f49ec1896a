package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
	"github.com/shamank/ora-sdk-go/pkg/config"
	"github.com/shamank/ora-sdk-go/pkg/metrics"
	"github.com/shamank/ora-sdk-go/pkg/oracle"
	"github.com/shamank/ora-sdk-go/pkg/storage"
	"github.com/shamank/ora-sdk-go/pkg/web3"
	"go.uber.org/zap"
)

// OraSDK is the public interface of an initialized SDK.
type OraSDK interface {
	// ORA returns the oracle plugin registered on the SDK's context.
	ORA() *oracle.Client

	// Context returns the host context the plugin is registered on.
	Context() *web3.Context

	// Storage returns the IPFS/Lighthouse reader used for result content.
	Storage() storage.Storage

	// Sender returns the address transactions are signed for, if a private
	// key is configured.
	Sender() (common.Address, bool)

	// Close releases resources associated with the SDK instance.
	Close()
}

var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation. It embeds the runtime
// configuration and owns the EVM connection.
type Core struct {
	*config.Config

	evm     *blockchain.EVMClient
	host    *web3.Context
	ora     *oracle.Client
	storage *storage.Client
	metrics *metrics.Sink
	signer  *bind.TransactOpts
}

// GetEvm returns the EVM client for advanced operations such as waiting for
// receipts or reading balances.
func (c *Core) GetEvm() *blockchain.EVMClient {
	return c.evm
}

// NewSDK validates cfg, applies default timeouts, dials cfg.RPCAddr and
// registers the oracle plugin.
func NewSDK(cfg *config.Config) (OraSDK, error) {
	if err := cfg.Validate(); err != nil {
		zap.L().Error("Invalid config", zap.Error(err))
		return nil, err
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()

	evmClient, err := blockchain.InitEvm(cfg.RPCAddr, cfg.Timeouts.Dial)
	if err != nil {
		zap.L().Error("Init ethereum client failed", zap.Error(err))
		return nil, err
	}

	core, err := NewSDKWithClient(cfg, evmClient)
	if err != nil {
		evmClient.Close()
		return nil, err
	}
	return core, nil
}

// NewSDKWithClient is NewSDK over an already connected EVM client. The
// client is owned by the returned Core and closed by Close.
func NewSDKWithClient(cfg *config.Config, evmClient *blockchain.EVMClient) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	if cfg.Debug {
		logLevel.SetLevel(zap.DebugLevel)
	}

	var opts []web3.ContextOption
	var signer *bind.TransactOpts
	if cfg.PrivateKey != "" {
		address, prvKey, err := blockchain.ParsePrivateKeyECDSA(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Dial)
		signer, err = evmClient.GetTransactOpts(ctx, prvKey)
		cancel()
		if err != nil {
			return nil, err
		}
		opts = append(opts, web3.WithSigner(signer))
		zap.L().Debug("signer address", zap.String("addr", address.Hex()))
	} else {
		zap.L().Debug("no private key configured, transactions use node accounts")
	}

	sink, err := initMetricsSink(cfg, zap.L())
	if err != nil {
		return nil, err
	}

	storageClient := storage.NewStorage(cfg.IpfsURL, cfg.LighthouseURL, cfg.Timeouts.StorageRead)
	host := web3.NewContext(evmClient, opts...)

	plugin, err := oracle.NewClient(oracle.Options{
		PromptAddress: cfg.PromptAddress,
		Namespace:     cfg.Namespace,
		Storage:       storageClient,
		Metrics:       sink,
	})
	if err != nil {
		sink.Close()
		return nil, err
	}
	if err := host.RegisterPlugin(plugin); err != nil {
		sink.Close()
		return nil, err
	}

	return &Core{
		Config:  cfg,
		evm:     evmClient,
		host:    host,
		ora:     plugin,
		storage: storageClient,
		metrics: sink,
		signer:  signer,
	}, nil
}

// initMetricsSink builds the sinks enabled in cfg. It returns a nil sink when
// none is enabled.
func initMetricsSink(cfg *config.Config, l *zap.Logger) (*metrics.Sink, error) {
	var clients []metrics.Client

	if cfg.Metrics.DataDog.Enabled {
		dd, err := metrics.NewDogStatsdClient(cfg.Metrics.DataDog.StatsdURL, cfg.Metrics.DataDog.SampleRate, l)
		if err != nil {
			return nil, err
		}
		clients = append(clients, dd)
	}

	if cfg.Metrics.Prometheus.Enabled {
		pm, err := metrics.NewPrometheusClient(nil, l)
		if err != nil {
			return nil, err
		}
		clients = append(clients, pm)
	}

	if len(clients) == 0 {
		return nil, nil
	}
	return metrics.NewSink(&metrics.SinkConfig{
		DefaultLabels: []metrics.Label{{Name: "network", Value: cfg.Network.Name}},
	}, clients, l), nil
}

// ORA returns the oracle plugin registered by NewSDKWithClient. The context
// rejects a second plugin under the same namespace, so it is always the one
// reachable through Context().
func (c *Core) ORA() *oracle.Client {
	return c.ora
}

// Context returns the host context.
func (c *Core) Context() *web3.Context {
	return c.host
}

// Storage returns the storage client.
func (c *Core) Storage() storage.Storage {
	return c.storage
}

// Sender returns the signer address when a private key is configured.
func (c *Core) Sender() (common.Address, bool) {
	if c.signer == nil {
		return common.Address{}, false
	}
	return c.signer.From, true
}

// Close shuts down underlying network clients (e.g., Ethereum RPC) and
// flushes metrics.
func (c *Core) Close() {
	c.metrics.Close()
	c.GetEvm().Close()
}
