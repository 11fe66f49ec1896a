// Package blockchain is the EVM transport layer of the SDK.
//
// # EVMClient
//
// InitEvm dials an RPC or WebSocket endpoint and verifies it by fetching the
// chain ID:
//
//	evm, err := blockchain.InitEvm("https://sepolia.infura.io/v3/YOUR_PROJECT_ID", 5*time.Second)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer evm.Close()
//
// EVMClient embeds *ethclient.Client, so it can be handed to anything that
// expects a go-ethereum contract backend. It also exposes SendTransactionArgs,
// which submits eth_sendTransaction for accounts unlocked on the node.
//
// # Signing
//
// Local signing needs a private key:
//
//	address, key, err := blockchain.ParsePrivateKeyECDSA(hexKey)
//	opts, err := evm.GetTransactOpts(ctx, key)
//
// # Receipts
//
// WaitForTransaction polls eth_getTransactionReceipt, doubling the delay after
// each miss, until the receipt appears or the context ends. Reverted
// transactions are returned together with an error.
//
// # Amounts
//
// EtherToWei and WeiToEther convert between ether and its 18-decimal base unit
// using shopspring/decimal, so fees can be shown and entered in ether.
package blockchain
