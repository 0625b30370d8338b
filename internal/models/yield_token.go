package models

// YieldToken - один yield-bearing токен (Midas) з APR та ціною
type YieldToken struct {
	TokenAddress string  `json:"token_address"`
	TokenSymbol  string  `json:"token_symbol"`
	Price        float64 `json:"price"`
	APR          float64 `json:"apr"`
	Protocol     string  `json:"protocol"`
}

// YieldTokenData - результат yield token сервісу
type YieldTokenData struct {
	Address          string       `json:"address,omitempty"`
	YieldTokens      []YieldToken `json:"yield_tokens"`
	TotalYieldTokens int          `json:"total_yield_tokens"`
	Error            string       `json:"error,omitempty"`
}

// EmptyYieldTokenData повертає задокументовану порожню форму
func EmptyYieldTokenData() *YieldTokenData {
	return &YieldTokenData{
		YieldTokens:      []YieldToken{},
		TotalYieldTokens: 0,
	}
}
