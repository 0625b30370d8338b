package models

// LendingPortfolio - per-protocol lending дані в агрегаті.
// Кожен протокол має власну незалежну форму.
type LendingPortfolio struct {
	LayerBank *APRData           `json:"layerbank"`
	Tropykus  *TropykusPortfolio `json:"tropykus"`
}

// EmptyLendingPortfolio повертає порожні форми обох протоколів
func EmptyLendingPortfolio() LendingPortfolio {
	return LendingPortfolio{
		LayerBank: EmptyAPRData("LayerBank", []string{}),
		Tropykus:  EmptyTropykusPortfolio(),
	}
}

// AggregateResult - повна відповідь router-а для однієї адреси
type AggregateResult struct {
	Address          string           `json:"address"`
	Evidence         Evidence         `json:"evidence"`
	NFTValuations    []NFTValuation   `json:"nft_valuations"`
	MerkleRewards    *RewardsSummary  `json:"merkle_rewards"`
	YieldTokens      *YieldTokenData  `json:"yield_tokens"`
	LendingPortfolio LendingPortfolio `json:"lending_portfolio"`
}

// EmptyAggregateResult повертає задокументовану нульову форму агрегату
func EmptyAggregateResult(address string, evidence Evidence) *AggregateResult {
	return &AggregateResult{
		Address:          address,
		Evidence:         evidence,
		NFTValuations:    []NFTValuation{},
		MerkleRewards:    EmptyRewardsSummary(),
		YieldTokens:      EmptyYieldTokenData(),
		LendingPortfolio: EmptyLendingPortfolio(),
	}
}
