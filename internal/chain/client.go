package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quinty-io/backend/pkg/xcontext"
	"golang.org/x/net/html"
)

const (
	RpcTimeOut      = time.Second * 5
	MaxShuffleTimes = 20
)

// Caller is the read-only surface of an EVM chain used by the indexer. It is
// an interface so watcher and fetcher tests can run against a fake chain.
type Caller interface {
	Start(ctx context.Context)

	BlockNumber(ctx context.Context) (uint64, error)
	BlockByNumber(ctx context.Context, number *big.Int) (*ethtypes.Block, error)
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]ethtypes.Log, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

// Default implementation of the chain Caller. Since eth RPC is often
// unstable, this client maintains a list of different RPCs to connect to and
// routes every call through one of the stable ones.
type defaultEthClient struct {
	chain           string
	chainID         *big.Int
	useExternalRpcs bool
	configuredRpcs  []string

	clients   []*ethclient.Client
	healthies []bool
	rpcs      []string

	mutex sync.RWMutex
}

func NewEthClient(chain string, chainID int64, rpcs []string, useExternalRpcs bool) Caller {
	return &defaultEthClient{
		chain:           chain,
		chainID:         big.NewInt(chainID),
		useExternalRpcs: useExternalRpcs,
		configuredRpcs:  rpcs,
		mutex:           sync.RWMutex{},
	}
}

func (c *defaultEthClient) Start(ctx context.Context) {
	go c.loopCheck(ctx)
}

func (c *defaultEthClient) loopCheck(ctx context.Context) {
	for {
		time.Sleep(xcontext.Configs(ctx).Blockchain.RefreshConnectionFrequency)
		c.updateRpcs(ctx)
	}
}

func (c *defaultEthClient) updateRpcs(ctx context.Context) {
	rpcs := make([]string, len(c.configuredRpcs))
	copy(rpcs, c.configuredRpcs)

	if c.useExternalRpcs {
		externals, err := c.getExtraRpcs(ctx)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Failed to get external rpc info: %v", err)
		} else {
			rpcs = append(rpcs, externals...)
		}
	}

	c.mutex.RLock()
	oldClients := c.clients
	c.mutex.RUnlock()

	rpcs, clients, healthies := c.getRpcsHealthiness(ctx, rpcs)

	c.mutex.Lock()
	for _, client := range oldClients {
		client.Close()
	}

	c.rpcs, c.clients, c.healthies = rpcs, clients, healthies
	c.mutex.Unlock()
}

func (c *defaultEthClient) getRpcsHealthiness(
	ctx context.Context, allRpcs []string,
) ([]string, []*ethclient.Client, []bool) {
	clients := make([]*ethclient.Client, 0)
	rpcs := make([]string, 0)
	healthies := make([]bool, 0)

	type healthyNode struct {
		client *ethclient.Client
		rpc    string
		height int64
	}

	nodes := make([]*healthyNode, 0)
	for _, rpc := range allRpcs {
		client, err := ethclient.Dial(rpc)
		if err != nil {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		block, err := client.BlockByNumber(callCtx, nil)
		cancel()

		if err != nil || block.Number() == nil {
			client.Close()
			continue
		}

		nodes = append(nodes, &healthyNode{
			client: client,
			rpc:    rpc,
			height: block.Number().Int64(),
		})
	}

	if len(nodes) == 0 {
		return rpcs, clients, healthies
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].height > nodes[j].height
	})

	// Only select nodes within a certain height from the median.
	height := nodes[len(nodes)/2].height
	for _, node := range nodes {
		diff := node.height - height
		if diff < 0 {
			diff = -diff
		}

		if diff < 5 {
			rpcs = append(rpcs, node.rpc)
			clients = append(clients, node.client)
			healthies = append(healthies, true)
		} else {
			node.client.Close()
		}
	}

	xcontext.Logger(ctx).Infof("Healthy rpcs for chain %s: %s", c.chain, rpcs)

	return rpcs, clients, healthies
}

func (c *defaultEthClient) processChainlistData(text string) ([]string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var data string
	for {
		tokenType := tokenizer.Next()
		stop := false
		switch tokenType {
		case html.ErrorToken:
			stop = true

		case html.TextToken:
			text := tokenizer.Token().Data
			var js json.RawMessage
			if json.Unmarshal([]byte(text), &js) == nil {
				data = text
			}
		}

		if stop {
			break
		}
	}

	type result struct {
		Props struct {
			PageProps struct {
				Chain struct {
					Name string `json:"name"`
					RPC  []struct {
						Url string `json:"url"`
					} `json:"rpc"`
				} `json:"chain"`
			} `json:"pageProps"`
		} `json:"props"`
	}

	r := &result{}
	if err := json.Unmarshal([]byte(data), r); err != nil {
		return nil, err
	}

	ret := make([]string, 0)
	for _, rpc := range r.Props.PageProps.Chain.RPC {
		ret = append(ret, rpc.Url)
	}

	return ret, nil
}

func (c *defaultEthClient) getExtraRpcs(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("https://chainlist.org/chain/%d", c.chainID)
	xcontext.Logger(ctx).Infof("Getting extra rpcs from remote link %s for chain %s", url, c.chain)

	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("failed to get chain list data, status code = %d", res.StatusCode)
	}

	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return c.processChainlistData(string(bz))
}

// shuffle returns a randomly permuted copy of the client set so that calls
// spread across healthy rpcs.
func (c *defaultEthClient) shuffle() ([]*ethclient.Client, []bool, []string) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	n := len(c.clients)
	if n == 0 {
		return nil, nil, nil
	}

	clients := make([]*ethclient.Client, n)
	healthy := make([]bool, n)
	rpcs := make([]string, n)

	copy(clients, c.clients)
	copy(healthy, c.healthies)
	copy(rpcs, c.rpcs)

	for i := 0; i < MaxShuffleTimes; i++ {
		x := rand.Intn(n)
		y := rand.Intn(n)

		clients[x], clients[y] = clients[y], clients[x]
		healthy[x], healthy[y] = healthy[y], healthy[x]
		rpcs[x], rpcs[y] = rpcs[y], rpcs[x]
	}

	return clients, healthy, rpcs
}

func (c *defaultEthClient) getHealthyClient(ctx context.Context) (*ethclient.Client, string) {
	c.mutex.RLock()
	if c.clients == nil {
		c.mutex.RUnlock()
		c.updateRpcs(ctx)
	} else {
		c.mutex.RUnlock()
	}

	clients, healthies, rpcs := c.shuffle()
	for i, healthy := range healthies {
		if healthy {
			return clients[i], rpcs[i]
		}
	}

	return nil, ""
}

func (c *defaultEthClient) execute(
	ctx context.Context, f func(client *ethclient.Client, rpc string) (any, error),
) (any, error) {
	client, rpc := c.getHealthyClient(ctx)
	if client == nil {
		return nil, fmt.Errorf("no healthy RPC for chain %s", c.chain)
	}

	return f(client, rpc)
}

func (c *defaultEthClient) BlockNumber(ctx context.Context) (uint64, error) {
	num, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()
		return client.BlockNumber(callCtx)
	})
	if err != nil {
		return 0, err
	}

	return num.(uint64), nil
}

func (c *defaultEthClient) BlockByNumber(ctx context.Context, number *big.Int) (*ethtypes.Block, error) {
	block, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()
		return client.BlockByNumber(callCtx, number)
	})
	if err != nil {
		return nil, err
	}

	return block.(*ethtypes.Block), nil
}

func (c *defaultEthClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]ethtypes.Log, error) {
	logs, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()
		return client.FilterLogs(callCtx, query)
	})
	if err != nil {
		return nil, err
	}

	return logs.([]ethtypes.Log), nil
}

func (c *defaultEthClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	receipt, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()
		return client.TransactionReceipt(callCtx, txHash)
	})
	if err != nil {
		return nil, err
	}

	return receipt.(*ethtypes.Receipt), nil
}

func (c *defaultEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	output, err := c.execute(ctx, func(client *ethclient.Client, rpc string) (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		defer cancel()
		return client.CallContract(callCtx, msg, nil)
	})
	if err != nil {
		return nil, err
	}

	return output.([]byte), nil
}
