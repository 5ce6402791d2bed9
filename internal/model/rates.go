package model

import "github.com/shopspring/decimal"

// Base VAT rates in percentage points. The tables are fixed by the three
// Portuguese tax regions; unknown regions are rejected upstream.

var foodBaseRates = map[Region]map[TaxTier]int64{
	RegionContinental: {TaxTierReduced: 6, TaxTierIntermediate: 13, TaxTierNormal: 23},
	RegionMadeira:     {TaxTierReduced: 5, TaxTierIntermediate: 12, TaxTierNormal: 22},
	RegionAzores:      {TaxTierReduced: 4, TaxTierIntermediate: 9, TaxTierNormal: 16},
}

// Prescribed pharmacy products get the reduced regional rate; everything
// else is taxed at the flat standard rate.
var pharmacyPrescribedRates = map[Region]int64{
	RegionContinental: 6,
	RegionMadeira:     5,
	RegionAzores:      4,
}

const pharmacyStandardRate int64 = 23

var (
	organicDiscount = decimal.NewFromFloat(0.9) // -10% of the current rate
	onePoint        = decimal.NewFromInt(1)     // flat one-percentage-point shift
)
