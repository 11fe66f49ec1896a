// Package sdk provides the high-level entry point for the ORA AI oracle.
//
// The SDK dials an Ethereum node, builds a web3.Context, registers the oracle
// plugin on it and hands the plugin back through ORA().
//
// # Quick Start
//
//	import (
//		"github.com/shamank/ora-sdk-go/pkg/config"
//		"github.com/shamank/ora-sdk-go/pkg/oracle"
//		"github.com/shamank/ora-sdk-go/pkg/sdk"
//	)
//
//	func main() {
//		cfg := &config.Config{
//			RPCAddr: "https://sepolia.infura.io/v3/YOUR_PROJECT_ID",
//			Network: config.Sepolia,
//		}
//
//		oraSDK, err := sdk.NewSDK(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer oraSDK.Close()
//
//		result, err := oraSDK.ORA().FetchAIResult(ctx, oracle.Llama2, "What is ORA?")
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(result)
//	}
//
// # Architecture
//
//   - blockchain: dials the node and provides signers and receipt waiting
//   - web3: host context with the plugin registry and contract handles
//   - oracle: the Prompt contract plugin, registered under Config.Namespace
//   - storage: IPFS and Lighthouse readers for results stored off-chain
//   - metrics: optional Prometheus and DogStatsD sinks
//
// # Paid Requests
//
// With Config.PrivateKey set, calculateAIResult is signed locally:
//
//	from, _ := oraSDK.Sender()
//	fee, err := oraSDK.ORA().EstimateFee(ctx, oracle.StableDiffusion)
//	tx, err := oraSDK.ORA().CalculateAIResult(ctx, from.Hex(), oracle.StableDiffusion, prompt, fee)
//	receipt, err := tx.Wait(ctx)
//
// Without a key, the transaction is sent with eth_sendTransaction and the node
// must hold the account given as from.
//
// # Logging
//
// The package installs a console zap logger as the global logger at init.
// Config.Debug lowers its level to debug. Replace it with zap.ReplaceGlobals
// for custom logging.
//
// # Timeouts
//
// NewSDK applies Config.Timeouts.WithDefaults. Dial bounds connecting and the
// chain id request. The other timeouts are for callers to apply to their
// contexts; the CLI does so.
package sdk
