package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Типи токенів які повертає Blockscout
const (
	TokenTypeERC20   = "ERC-20"
	TokenTypeERC721  = "ERC-721"
	TokenTypeERC404  = "ERC-404"
	TokenTypeERC1155 = "ERC-1155"
	TokenTypeNative  = "native"
)

// Token представляє метадані токена від Blockscout
type Token struct {
	AddressHash  string `json:"address_hash"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Type         string `json:"type"`
	Decimals     string `json:"decimals"`
	ExchangeRate string `json:"exchange_rate"`
	IconURL      string `json:"icon_url,omitempty"`
	TotalSupply  string `json:"total_supply,omitempty"`
}

// TokenBalance представляє один баланс токена для адреси.
// Value - raw value у найменших одиницях токена (decimal string).
type TokenBalance struct {
	Token   Token  `json:"token"`
	TokenID string `json:"token_id,omitempty"`
	Value   string `json:"value"`
}

// Address повертає lowercased адресу токена
func (b TokenBalance) Address() string {
	return strings.ToLower(b.Token.AddressHash)
}

// HasPositiveValue перевіряє чи value строго більше нуля.
// Невалідний рядок трактується як нуль.
func (b TokenBalance) HasPositiveValue() bool {
	d, err := decimal.NewFromString(strings.TrimSpace(b.Value))
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// AmountFloat конвертує raw value у токен-одиниці враховуючи decimals
func (b TokenBalance) AmountFloat() float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(b.Value))
	if err != nil {
		return 0
	}
	decimals := int32(18)
	if b.Token.Decimals != "" {
		if parsed, err := decimal.NewFromString(b.Token.Decimals); err == nil {
			decimals = int32(parsed.IntPart())
		}
	}
	f, _ := d.Shift(-decimals).Float64()
	return f
}

// USDValue рахує вартість балансу через exchange rate (0 якщо rate відсутній)
func (b TokenBalance) USDValue() float64 {
	if b.Token.ExchangeRate == "" {
		return 0
	}
	rate, err := decimal.NewFromString(b.Token.ExchangeRate)
	if err != nil {
		return 0
	}
	f, _ := rate.Float64()
	return b.AmountFloat() * f
}
