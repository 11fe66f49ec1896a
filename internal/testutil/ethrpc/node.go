package ethrpc

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
)

// CallArgs is the eth_call object as ethclient sends it.
type CallArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value"`
}

// SendArgs is the eth_sendTransaction object.
type SendArgs struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value"`
}

// Node is a fake Ethereum node serving a small part of the eth namespace.
// Mount Server() behind rpc.DialInProc or an httptest server.
type Node struct {
	ChainID *big.Int
	// Output answers eth_call. The default returns empty output.
	Output func(args CallArgs) ([]byte, error)

	mu       sync.Mutex
	calls    []CallArgs
	blocks   []string
	sends    []SendArgs
	receipts map[common.Hash]*types.Receipt
}

// NewNode creates a node for chainID.
func NewNode(chainID int64) *Node {
	return &Node{
		ChainID:  big.NewInt(chainID),
		receipts: make(map[common.Hash]*types.Receipt),
	}
}

// Server returns an RPC server exposing the node under "eth".
func (n *Node) Server() *rpc.Server {
	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", &ethAPI{n: n}); err != nil {
		panic(err)
	}
	return srv
}

// Dial connects an in-process client to the node.
func (n *Node) Dial() *rpc.Client {
	return rpc.DialInProc(n.Server())
}

// Calls returns the eth_call arguments received so far.
func (n *Node) Calls() []CallArgs {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]CallArgs(nil), n.calls...)
}

// CallBlocks returns the block tag of each eth_call.
func (n *Node) CallBlocks() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.blocks...)
}

// Sends returns the eth_sendTransaction arguments received so far.
func (n *Node) Sends() []SendArgs {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SendArgs(nil), n.sends...)
}

// Mine stores a successful receipt for hash with logs.
func (n *Node) Mine(hash common.Hash, logs ...*types.Log) *types.Receipt {
	n.mu.Lock()
	defer n.mu.Unlock()
	if logs == nil {
		logs = []*types.Log{}
	}
	r := &types.Receipt{
		Type:              types.LegacyTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
		GasUsed:           21000,
		Logs:              logs,
		TxHash:            hash,
		BlockNumber:       big.NewInt(1),
	}
	n.receipts[hash] = r
	return r
}

type ethAPI struct {
	n *Node
}

func (api *ethAPI) ChainId() *hexutil.Big {
	return (*hexutil.Big)(api.n.ChainID)
}

func (api *ethAPI) Call(_ context.Context, args CallArgs, block string) (hexutil.Bytes, error) {
	api.n.mu.Lock()
	api.n.calls = append(api.n.calls, args)
	api.n.blocks = append(api.n.blocks, block)
	fn := api.n.Output
	api.n.mu.Unlock()
	if fn == nil {
		return hexutil.Bytes{}, nil
	}
	return fn(args)
}

func (api *ethAPI) SendTransaction(args SendArgs) common.Hash {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	api.n.sends = append(api.n.sends, args)
	return crypto.Keccak256Hash(args.From.Bytes(), args.Data, big.NewInt(int64(len(api.n.sends))).Bytes())
}

func (api *ethAPI) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return api.n.receipts[hash]
}
