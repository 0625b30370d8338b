package blockscout

import "github.com/GabrielaCA88/ibitracker/internal/models"

// TokenBalancesResponse - відповідь /addresses/{address}/token-balances
// (Blockscout повертає масив верхнього рівня)
type TokenBalancesResponse []models.TokenBalance

// NFTItem - один NFT instance від /addresses/{address}/nft
type NFTItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TokenType string   `json:"token_type"`
	Token     NFTToken `json:"token"`
}

// NFTToken - метадані токен-контракту NFT
type NFTToken struct {
	AddressHash string `json:"address_hash"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Type        string `json:"type"`
}

// NFTResponse - відповідь /addresses/{address}/nft
type NFTResponse struct {
	Items []NFTItem `json:"items"`
}

// TokenInfo - відповідь /tokens/{address}
type TokenInfo struct {
	AddressHash  string `json:"address_hash"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Type         string `json:"type"`
	Decimals     string `json:"decimals"`
	ExchangeRate string `json:"exchange_rate"`
}
