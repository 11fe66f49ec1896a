// Package config defines the runtime configuration of the ORA SDK.
//
// # Basic Configuration
//
// The minimum configuration is an RPC endpoint. Network defaults to Sepolia
// and PromptAddress to the network's published Prompt contract:
//
//	cfg := &config.Config{
//		RPCAddr: "https://sepolia.infura.io/v3/YOUR_PROJECT_ID",
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// # Networks
//
//	config.Sepolia - Ethereum Sepolia testnet (ChainID: 11155111)
//	config.Main    - Ethereum mainnet (ChainID: 1)
//
// A network may be given by name only ({Name: "mainnet"}); Validate completes
// it. Custom chains must set PromptAddress explicitly.
//
// # Private Key
//
// PrivateKey is optional. With it, calculateAIResult is signed locally.
// Without it, the transaction is sent with eth_sendTransaction and the node
// must manage the sending account. Never commit keys; prefer the ORA_PRIVATE_KEY
// environment variable read by the CLI.
//
// # YAML
//
// Load reads a YAML file and rejects unknown keys:
//
//	rpc_addr: wss://sepolia.infura.io/ws/v3/PROJECT_ID
//	network:
//	  network_name: sepolia
//	timeouts:
//	  chain_read: 10s
//	metrics:
//	  prometheus:
//	    enabled: true
//
// # Timeouts
//
// Zero timeouts are replaced by WithDefaults: Dial 5s, ChainRead 12s,
// ChainSubmit 25s, ReceiptWait 90s, StorageRead 30s.
package config
