package models

// Evidence містить прапорці які визначають які сервіси потрібні для адреси.
// Живе тільки в межах одного запиту, ніколи не персиститься.
type Evidence struct {
	HasYieldToken    bool `json:"has_yield_token"`
	HasLending       bool `json:"has_lending"`
	HasNFTs          bool `json:"has_nfts"`
	HasMerkleRewards bool `json:"has_merkle_rewards"`
}

// AllEvidence повертає всі прапорці true - fail-open fallback,
// гарантує що жоден сервіс не буде пропущений через внутрішню помилку
func AllEvidence() Evidence {
	return Evidence{
		HasYieldToken:    true,
		HasLending:       true,
		HasNFTs:          true,
		HasMerkleRewards: true,
	}
}
