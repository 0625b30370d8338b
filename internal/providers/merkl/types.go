package merkl

// ChainRewards - винагороди одного chain для користувача.
// Merkl повертає масив таких об'єктів, по одному на chain.
type ChainRewards struct {
	Chain   Chain        `json:"chain"`
	Rewards []RewardData `json:"rewards"`
}

type Chain struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RewardData - одна claimable винагорода
type RewardData struct {
	Amount     string            `json:"amount"`
	Claimed    string            `json:"claimed"`
	Pending    string            `json:"pending"`
	Token      TokenData         `json:"token"`
	Breakdowns []RewardBreakdown `json:"breakdowns"`
}

// RewardBreakdown - розбивка винагороди по campaign
type RewardBreakdown struct {
	CampaignID string `json:"campaignId"`
	Amount     string `json:"amount"`
	Reason     string `json:"reason"`
}

// TokenData - токен винагороди з ціною
type TokenData struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	Price    float64 `json:"price"`
}

// OpportunityData - одна opportunity від /opportunities/?campaignId=...
// Перший токен несе ціну, другий - адресу reserve.
type OpportunityData struct {
	ID     string            `json:"id"`
	Status string            `json:"status"`
	Action string            `json:"action"`
	APR    float64           `json:"apr"`
	Tokens []OpportunityToken `json:"tokens"`
}

type OpportunityToken struct {
	Address string  `json:"address"`
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
}
