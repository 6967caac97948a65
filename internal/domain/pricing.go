package domain

import "github.com/shopspring/decimal"

// CostTier buckets a package by its USD price: up to 300 low, up to 600
// medium, above that high. The tier drives the flight class and hotel
// category shown alongside a package.
type CostTier string

const (
	TierLowCost    CostTier = "Low Cost"
	TierMediumCost CostTier = "Medium Cost"
	TierHighCost   CostTier = "High Cost"
)

var (
	tierLowMax    = decimal.NewFromInt(300)
	tierMediumMax = decimal.NewFromInt(600)
)

func TierForPrice(price decimal.Decimal) CostTier {
	switch {
	case price.LessThanOrEqual(tierLowMax):
		return TierLowCost
	case price.LessThanOrEqual(tierMediumMax):
		return TierMediumCost
	default:
		return TierHighCost
	}
}

func (t CostTier) FlightClass() string {
	if t == TierHighCost {
		return "Clase Económica / Business"
	}
	return "Clase Económica"
}

func (t CostTier) HotelStars() int {
	switch t {
	case TierLowCost:
		return 3
	case TierMediumCost:
		return 4
	default:
		return 5
	}
}
