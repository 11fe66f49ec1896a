// Package web3 is a small host layer over go-ethereum for contract plugins.
//
// A Context owns the active Provider (the chain transport), an optional local
// signer, and a registry of plugins addressable by namespace:
//
//	host := web3.NewContext(evm, web3.WithSigner(opts))
//	if err := host.RegisterPlugin(client); err != nil {
//		return err
//	}
//	ora, err := web3.Resolve[*oracle.Client](host, "ora")
//
// A Contract pairs a Descriptor (parsed ABI) with a deployed address. It is
// linked to a Context and issues read calls (eth_call) and write calls
// (locally signed or eth_sendTransaction) through that Context's provider.
// Method existence is checked against the Descriptor before any encoding, so
// a missing method yields ErrUnsupportedABI without touching the network.
//
// Errors returned by the provider are passed through unchanged.
//
// Contracts re-read the Context's provider on every call. Linking the same
// Contract to different Contexts from concurrent goroutines is allowed but
// the ordering between those calls is undefined.
package web3
