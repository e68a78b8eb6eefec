package offer

import "github.com/coderr-app/marketplace-api/internal/models"

// MinPrice and MinDeliveryTime are computed independently: the cheapest
// tier need not be the fastest.

func MinPrice(details []models.OfferDetail) float64 {
	if len(details) == 0 {
		return 0
	}
	min := details[0].Price
	for _, d := range details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}
	return min
}

func MinDeliveryTime(details []models.OfferDetail) int {
	if len(details) == 0 {
		return 0
	}
	min := details[0].DeliveryTimeInDays
	for _, d := range details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return min
}
