package chain

import "math/big"

// mantissa для Compound-style fixed point значень
var mantissa = new(big.Float).SetFloat64(1e18)

// RatePerBlockToAnnual конвертує per-block ставку (scaled by 1e18)
// у річну дробову ставку: rate * blocksPerYear / 1e18.
// Лінійна апроксимація без compounding - достатньо для відображення.
func RatePerBlockToAnnual(ratePerBlock *big.Int, blocksPerYear int64) float64 {
	if ratePerBlock == nil || ratePerBlock.Sign() == 0 || blocksPerYear <= 0 {
		return 0
	}

	annual := new(big.Float).SetInt(ratePerBlock)
	annual.Mul(annual, new(big.Float).SetInt64(blocksPerYear))
	annual.Quo(annual, mantissa)

	result, _ := annual.Float64()
	return result
}

// MantissaToFloat конвертує 1e18-scaled значення у float64
func MantissaToFloat(value *big.Int) float64 {
	if value == nil {
		return 0
	}
	f := new(big.Float).SetInt(value)
	f.Quo(f, mantissa)
	result, _ := f.Float64()
	return result
}
