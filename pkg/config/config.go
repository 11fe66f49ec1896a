package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
	"github.com/shamank/ora-sdk-go/pkg/oracle"
	"github.com/shamank/ora-sdk-go/pkg/web3"
)

// Defaults applied by Validate.
const (
	DefaultLighthouseURL = "https://gateway.lighthouse.storage/ipfs/"
	DefaultIpfsURL       = "http://127.0.0.1:5001"
	DefaultStatsdURL     = "localhost:8125"
)

// Config holds all SDK settings required to initialize the chain client and the
// oracle plugin. Use Validate to fill implicit defaults and to check for
// required fields.
type Config struct {
	// Network selects the target chain. It defaults to Sepolia.
	Network Network `json:"network" yaml:"network"`
	// RPCAddr is the Ethereum RPC/WS endpoint URL (required).
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// PrivateKey is the hex-encoded ECDSA private key used to sign
	// calculateAIResult transactions locally. Without it, transactions are
	// sent from a node-managed account.
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// PromptAddress overrides the network's Prompt contract address.
	PromptAddress string `json:"prompt_address" yaml:"prompt_address"`
	// Namespace is the plugin namespace. Default: "ora".
	Namespace string `json:"namespace" yaml:"namespace"`
	// LighthouseURL is the HTTP gateway used to fetch Filecoin-backed results.
	// Default: https://gateway.lighthouse.storage/ipfs/
	LighthouseURL string `json:"lighthouse_url" yaml:"lighthouse_url"`
	// IpfsURL is the HTTP API endpoint of the IPFS node used to read results.
	// Default: http://127.0.0.1:5001
	IpfsURL string `json:"ipfs_url" yaml:"ipfs_url"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
	// Metrics selects the metrics sinks. All are disabled by default.
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Network describes a blockchain network. ChainID is informational for
// read-only use; signing uses the chain ID reported by the node.
type Network struct {
	ChainID       string `json:"chain_id" yaml:"chain_id"`
	Name          string `json:"network_name" yaml:"network_name"`
	PromptAddress string `json:"prompt_address" yaml:"prompt_address"`
}

// Sepolia is a predefined Network for Ethereum Sepolia testnet.
var Sepolia = Network{
	ChainID:       "11155111",
	Name:          oracle.NetworkSepolia,
	PromptAddress: oracle.PromptAddressSepolia,
}

// Main is a predefined Network for Ethereum mainnet.
var Main = Network{
	ChainID:       "1",
	Name:          oracle.NetworkMainnet,
	PromptAddress: oracle.PromptAddressMainnet,
}

// NetworkByName returns the predefined network called name.
func NetworkByName(name string) (Network, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Sepolia.Name:
		return Sepolia, true
	case Main.Name, "main":
		return Main, true
	}
	return Network{}, false
}

// Metrics selects where oracle call metrics go.
type Metrics struct {
	Prometheus PrometheusConfig `json:"prometheus" yaml:"prometheus"`
	DataDog    DataDogConfig    `json:"datadog" yaml:"datadog"`
}

// PrometheusConfig enables collectors on the default Prometheus registerer.
type PrometheusConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DataDogConfig enables a DogStatsD client.
type DataDogConfig struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	StatsdURL  string  `json:"statsd_url" yaml:"statsd_url"`
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration `json:"dial" yaml:"dial"`                 // dial + chain id
	ChainRead   time.Duration `json:"chain_read" yaml:"chain_read"`     // eth_call
	ChainSubmit time.Duration `json:"chain_submit" yaml:"chain_submit"` // send tx
	ReceiptWait time.Duration `json:"receipt_wait" yaml:"receipt_wait"` // wait tx
	StorageRead time.Duration `json:"storage_read" yaml:"storage_read"` // ipfs / lighthouse
}

// Validate normalizes the configuration by applying implicit defaults and
// verifies the required fields:
//   - Network defaults to Sepolia; a known Name without ChainID is completed.
//   - PromptAddress defaults to the network's published address and must be
//     a valid address.
//   - Namespace, LighthouseURL, IpfsURL and the statsd URL get defaults.
//   - RPCAddr is required; PrivateKey, when set, must parse.
func (c *Config) Validate() error {
	if c.LighthouseURL == "" {
		c.LighthouseURL = DefaultLighthouseURL
	}

	if c.IpfsURL == "" {
		c.IpfsURL = DefaultIpfsURL
	}

	if c.Namespace == "" {
		c.Namespace = oracle.DefaultNamespace
	}

	if c.Metrics.DataDog.Enabled && c.Metrics.DataDog.StatsdURL == "" {
		c.Metrics.DataDog.StatsdURL = DefaultStatsdURL
	}

	switch {
	case c.Network.ChainID == "" && c.Network.Name == "":
		c.Network = Sepolia
	case c.Network.ChainID == "":
		n, ok := NetworkByName(c.Network.Name)
		if !ok {
			return fmt.Errorf("unknown network %q", c.Network.Name)
		}
		if c.Network.PromptAddress != "" {
			n.PromptAddress = c.Network.PromptAddress
		}
		c.Network = n
	}

	if c.RPCAddr == "" {
		return errors.New("RPC address is required")
	}

	if c.PromptAddress == "" {
		c.PromptAddress = c.Network.PromptAddress
	}
	if c.PromptAddress == "" {
		return fmt.Errorf("prompt address is required for network %q", c.Network.Name)
	}
	if !web3.IsAddress(c.PromptAddress) {
		return pkgerrors.Wrapf(web3.ErrInvalidAddress, "prompt address is not valid: %q", c.PromptAddress)
	}

	if c.PrivateKey != "" {
		if _, _, err := blockchain.ParsePrivateKeyECDSA(c.PrivateKey); err != nil {
			return errors.New("private key is not a valid hex-encoded secp256k1 key")
		}
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
//	StorageRead: 30s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	if tt.StorageRead == 0 {
		tt.StorageRead = 30 * time.Second
	}
	return tt
}
