// Package oracle is the ORA AI-oracle plugin. It binds the Prompt contract to
// a web3.Context and exposes its three operations as typed calls:
//
//   - FetchAIResult reads the stored result for (model, prompt) with eth_call.
//   - EstimateFee reads the fee, in wei, for a model.
//   - CalculateAIResult submits a paid transaction asking the oracle to compute
//     a result.
//
// Usage:
//
//	host := web3.NewContext(evm)
//	ora, err := oracle.NewClient(oracle.Options{PromptAddress: oracle.PromptAddressSepolia})
//	if err != nil {
//		return err
//	}
//	if err := host.RegisterPlugin(ora); err != nil {
//		return err
//	}
//
//	fee, err := ora.EstimateFee(ctx, oracle.StableDiffusion)
//	tx, err := ora.CalculateAIResult(ctx, from, oracle.StableDiffusion, "Generate image of btc", fee)
//	receipt, err := tx.Wait(ctx)
//	// ... once the oracle has answered:
//	cid, err := ora.FetchAIResult(ctx, oracle.StableDiffusion, "Generate image of btc")
//
// Operations check the ABI for the method they need before touching the
// network and fail with web3.ErrUnsupportedABI if it is missing. Errors from
// the node are returned unchanged.
package oracle
