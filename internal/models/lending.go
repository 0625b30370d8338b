package models

// Дії incentive campaigns від Merkl
const (
	ActionLend   = "LEND"
	ActionBorrow = "BORROW"

	StatusLive = "LIVE"
)

// Opportunity представляє одну incentive campaign від Merkl opportunities API.
// Одна opportunity відповідає одній стороні (lend або borrow) одного reserve.
type Opportunity struct {
	CampaignID           string  `json:"campaign_id"`
	Status               string  `json:"status"`
	Action               string  `json:"action"`
	APR                  float64 `json:"apr"`
	Price                float64 `json:"price"`
	ReserveTokenAddress  string  `json:"reserve_address"`
	ExplorerTokenAddress string  `json:"explorer_address"`
}

// OrganicRate представляє базову ставку одного reserve/market.
// Rates - дробові значення (не відсотки): 0.05 = 5%.
type OrganicRate struct {
	ReserveAddress      string  `json:"reserve"`
	ReceiptTokenAddress string  `json:"receipt_token,omitempty"`
	DebtTokenAddress    string  `json:"debt_token,omitempty"`
	LiquidityRate       float64 `json:"liquidity_rate"`
	VariableBorrowRate  float64 `json:"variable_borrow_rate"`
	LastUpdate          string  `json:"latest_update"`
}

// MergedPosition - результат злиття organic та incentivized APR для одного
// reserve і однієї дії. Всі APR у відсотках. Для BORROW organic_apr
// зберігається зі знаком мінус (це вартість), тому позитивний incentive
// зменшує чисту вартість позики.
type MergedPosition struct {
	ReserveAddress     string  `json:"reserve_address"`
	Action             string  `json:"action"`
	OrganicAPR         float64 `json:"organic_apr"`
	IncentivizedAPR    float64 `json:"incentivized_apr"`
	TotalAPR           float64 `json:"total_apr"`
	LiquidityRate      float64 `json:"liquidity_rate"`
	VariableBorrowRate float64 `json:"variable_borrow_rate"`
	LastUpdate         string  `json:"latest_update"`
	CampaignID         string  `json:"campaign_id"`
	Status             string  `json:"status"`
	ExplorerAddress    string  `json:"explorer_address"`
	Price              float64 `json:"price"`
}

// APRData - результат GetAPRData одного протоколу
type APRData struct {
	Protocol           string                      `json:"protocol"`
	CampaignIDs        []string                    `json:"campaign_ids"`
	PortfolioEntries   []MergedPosition            `json:"portfolio_entries"`
	CampaignBreakdowns map[string][]MergedPosition `json:"campaign_breakdowns"`
	LastUpdated        string                      `json:"last_updated,omitempty"`
	Error              string                      `json:"error,omitempty"`
}

// EmptyAPRData повертає задокументовану порожню форму APRData
func EmptyAPRData(protocol string, campaignIDs []string) *APRData {
	return &APRData{
		Protocol:           protocol,
		CampaignIDs:        campaignIDs,
		PortfolioEntries:   []MergedPosition{},
		CampaignBreakdowns: map[string][]MergedPosition{},
	}
}

// TokenPrice - ціна одного токена від Merkl opportunities
type TokenPrice struct {
	Price          float64 `json:"price"`
	CampaignID     string  `json:"campaign_id"`
	ReserveAddress string  `json:"reserve_address"`
}

// PriceData - результат GetPriceData одного протоколу.
// Ключі TokenPrices - lowercased explorer адреси.
type PriceData struct {
	Protocol    string                `json:"protocol"`
	TokenPrices map[string]TokenPrice `json:"token_prices"`
	CampaignIDs []string              `json:"campaign_ids"`
	Error       string                `json:"error,omitempty"`
}

// EmptyPriceData повертає задокументовану порожню форму PriceData
func EmptyPriceData(protocol string, campaignIDs []string) *PriceData {
	return &PriceData{
		Protocol:    protocol,
		TokenPrices: map[string]TokenPrice{},
		CampaignIDs: campaignIDs,
	}
}

// TropykusPortfolioItem - одна позиція у Tropykus портфелі
type TropykusPortfolioItem struct {
	MarketAddress     string  `json:"market_address"`
	UnderlyingAddress string  `json:"underlying_address"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Balance           float64 `json:"balance"`
	SupplyAPR         float64 `json:"supply_apr"`
	BorrowAPR         float64 `json:"borrow_apr"`
	ExchangeRate      float64 `json:"exchange_rate"`
}

// TropykusPortfolio - результат портфельного запиту Tropykus
type TropykusPortfolio struct {
	Protocol       string                  `json:"protocol"`
	PortfolioItems []TropykusPortfolioItem `json:"portfolio_items"`
	TotalItems     int                     `json:"total_items"`
	Error          string                  `json:"error,omitempty"`
}

// EmptyTropykusPortfolio повертає задокументовану порожню форму портфеля
func EmptyTropykusPortfolio() *TropykusPortfolio {
	return &TropykusPortfolio{
		Protocol:       "Tropykus",
		PortfolioItems: []TropykusPortfolioItem{},
		TotalItems:     0,
	}
}
