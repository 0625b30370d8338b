package models

// NFTValuation - оцінена NFT позиція (Uniswap-style LP position)
type NFTValuation struct {
	NFTID                    string  `json:"nft_id"`
	ContractAddress          string  `json:"contract_address"`
	Name                     string  `json:"name"`
	TokenName                string  `json:"token_name"`
	TokenSymbol              string  `json:"token_symbol"`
	TokenType                string  `json:"token_type"`
	CurrentLiquidity         string  `json:"current_liquidity"`
	TotalValueUSD            float64 `json:"total_value_usd"`
	TotalValueFormatted      string  `json:"total_value_formatted"`
	UncollectedUSDFees       float64 `json:"uncollected_usd_fees"`
	UncollectedFeesFormatted string  `json:"uncollected_fees_formatted"`
}
