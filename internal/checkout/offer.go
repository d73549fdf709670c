package checkout

import "math"

// Flow identifies which checkout page a payment came from.
type Flow string

const (
	FlowVSL   Flow = "vsl"
	FlowPopup Flow = "popup"
)

// ParseFlow validates a flow name.
func ParseFlow(s string) (Flow, error) {
	switch f := Flow(s); f {
	case FlowVSL, FlowPopup:
		return f, nil
	default:
		return "", ErrInvalidFlow
	}
}

// Theme is the color scheme of an offer page.
type Theme string

const (
	ThemePurple Theme = "purple"
	ThemeRed    Theme = "red"
)

// Offer is what the player is buying on a checkout page.
type Offer struct {
	Flow          Flow
	Price         float64
	OriginalPrice float64 // zero when there is no discount
	Description   string
	Theme         Theme
}

// OfferVSL is the main offer.
func OfferVSL() Offer {
	return Offer{
		Flow:        FlowVSL,
		Price:       19.90,
		Description: "Oferta Principal VSL",
		Theme:       ThemePurple,
	}
}

// OfferPopup is the last-chance discount shown after the game.
func OfferPopup() Offer {
	return Offer{
		Flow:          FlowPopup,
		Price:         9.90,
		OriginalPrice: 19.90,
		Description:   "Oferta Especial - Última Chance!",
		Theme:         ThemeRed,
	}
}

// OfferFor returns the preset offer for a flow.
func OfferFor(f Flow) (Offer, error) {
	switch f {
	case FlowVSL:
		return OfferVSL(), nil
	case FlowPopup:
		return OfferPopup(), nil
	default:
		return Offer{}, ErrInvalidFlow
	}
}

// Discounted reports whether the offer is cheaper than its original price.
func (o Offer) Discounted() bool {
	return o.OriginalPrice > o.Price
}

// DiscountPercent returns the discount rounded to a whole percent.
func (o Offer) DiscountPercent() int {
	if !o.Discounted() {
		return 0
	}
	return int(math.Round((o.OriginalPrice - o.Price) / o.OriginalPrice * 100))
}
