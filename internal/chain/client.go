// Package chain - on-chain читання Tropykus (Compound fork) маркетів
// через Rootstock JSON-RPC.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const comptrollerABI = `[
	{"inputs":[],"name":"getAllMarkets","outputs":[{"name":"","type":"address[]"}],"stateMutability":"view","type":"function"}
]`

const marketABI = `[
	{"inputs":[],"name":"supplyRatePerBlock","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"borrowRatePerBlock","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"exchangeRateStored","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"underlying","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`

// MarketRates - ставки та метадані одного Tropykus маркету.
// Rates - per-block значення scaled by 1e18.
type MarketRates struct {
	Market             common.Address
	Underlying         common.Address
	Symbol             string
	SupplyRatePerBlock *big.Int
	BorrowRatePerBlock *big.Int
	ExchangeRateStored *big.Int
}

// Client читає Tropykus контракти через ethclient
type Client struct {
	eth            *ethclient.Client
	comptroller    common.Address
	comptrollerABI abi.ABI
	marketABI      abi.ABI
}

// NewClient створює новий chain client.
// rpcURL - Rootstock JSON-RPC endpoint, comptrollerAddr - Tropykus Unitroller.
func NewClient(rpcURL, comptrollerAddr string) (*Client, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	compABI, err := abi.JSON(strings.NewReader(comptrollerABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse comptroller ABI: %w", err)
	}

	mktABI, err := abi.JSON(strings.NewReader(marketABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse market ABI: %w", err)
	}

	return &Client{
		eth:            eth,
		comptroller:    common.HexToAddress(comptrollerAddr),
		comptrollerABI: compABI,
		marketABI:      mktABI,
	}, nil
}

// AllMarkets повертає адреси всіх kToken маркетів з comptroller
func (c *Client) AllMarkets(ctx context.Context) ([]common.Address, error) {
	data, err := c.comptrollerABI.Pack("getAllMarkets")
	if err != nil {
		return nil, err
	}

	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &c.comptroller,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("getAllMarkets call failed: %w", err)
	}

	var markets []common.Address
	if err := c.comptrollerABI.UnpackIntoInterface(&markets, "getAllMarkets", result); err != nil {
		return nil, fmt.Errorf("failed to unpack getAllMarkets: %w", err)
	}

	return markets, nil
}

// MarketRates читає ставки одного маркету.
// underlying() відсутній у нативному rBTC маркеті - тоді Underlying лишається нульовою адресою.
func (c *Client) MarketRates(ctx context.Context, market common.Address) (*MarketRates, error) {
	rates := &MarketRates{Market: market}

	supply, err := c.callUint(ctx, market, "supplyRatePerBlock")
	if err != nil {
		return nil, err
	}
	rates.SupplyRatePerBlock = supply

	borrow, err := c.callUint(ctx, market, "borrowRatePerBlock")
	if err != nil {
		return nil, err
	}
	rates.BorrowRatePerBlock = borrow

	if exchangeRate, err := c.callUint(ctx, market, "exchangeRateStored"); err == nil {
		rates.ExchangeRateStored = exchangeRate
	}

	if underlying, err := c.callAddress(ctx, market, "underlying"); err == nil {
		rates.Underlying = underlying
	}

	if symbol, err := c.callString(ctx, market, "symbol"); err == nil {
		rates.Symbol = symbol
	}

	return rates, nil
}

// Close закриває RPC з'єднання
func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) call(ctx context.Context, to common.Address, method string) ([]byte, error) {
	data, err := c.marketABI.Pack(method)
	if err != nil {
		return nil, err
	}

	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", method, err)
	}
	return result, nil
}

func (c *Client) callUint(ctx context.Context, to common.Address, method string) (*big.Int, error) {
	result, err := c.call(ctx, to, method)
	if err != nil {
		return nil, err
	}

	var value *big.Int
	if err := c.marketABI.UnpackIntoInterface(&value, method, result); err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return value, nil
}

func (c *Client) callAddress(ctx context.Context, to common.Address, method string) (common.Address, error) {
	result, err := c.call(ctx, to, method)
	if err != nil {
		return common.Address{}, err
	}

	var value common.Address
	if err := c.marketABI.UnpackIntoInterface(&value, method, result); err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return value, nil
}

func (c *Client) callString(ctx context.Context, to common.Address, method string) (string, error) {
	result, err := c.call(ctx, to, method)
	if err != nil {
		return "", err
	}

	var value string
	if err := c.marketABI.UnpackIntoInterface(&value, method, result); err != nil {
		return "", fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	return value, nil
}
