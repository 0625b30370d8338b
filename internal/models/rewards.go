package models

// RewardToken - інформація про токен винагороди
type RewardToken struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Decimals int     `json:"decimals"`
	Price    float64 `json:"price"`
}

// Reward представляє одну claimable винагороду від Merkl
type Reward struct {
	Amount            string      `json:"amount"`
	AmountFormatted   string      `json:"amount_formatted"`
	AmountNumeric     float64     `json:"amount_numeric"`
	Token             RewardToken `json:"token"`
	USDValue          float64     `json:"usd_value"`
	USDValueFormatted string      `json:"usd_value_formatted"`
	CampaignID        string      `json:"campaign_id,omitempty"`
}

// RewardsSummary - зведення винагород для адреси
type RewardsSummary struct {
	Address                string   `json:"address,omitempty"`
	Rewards                []Reward `json:"rewards"`
	TotalRewards           int      `json:"total_rewards"`
	TotalUSDValue          float64  `json:"total_usd_value"`
	TotalUSDValueFormatted string   `json:"total_usd_value_formatted,omitempty"`
	CampaignIDs            []string `json:"campaign_ids,omitempty"`
}

// EmptyRewardsSummary повертає задокументовану порожню форму зведення
func EmptyRewardsSummary() *RewardsSummary {
	return &RewardsSummary{
		Rewards:                []Reward{},
		TotalRewards:           0,
		TotalUSDValue:          0,
		TotalUSDValueFormatted: "$0.00",
	}
}
