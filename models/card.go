package models

import "strings"

// BinLength is the number of leading card digits that make up the BIN.
const BinLength = 6

// TypeUnknown is reported as the card type when the BIN is missing from the
// dataset and the brand had to be inferred from the leading digit.
const TypeUnknown = "unknown"

// EmptyImage is the placeholder served for brands without a logo asset.
const EmptyImage = "/images/empty.png"

// CardBinEntry is one row of the BIN dataset: a 6-digit prefix mapped to the
// issuing brand and card type. Entries are immutable once loaded.
type CardBinEntry struct {
	BIN   string `json:"bin"`
	Brand string `json:"brand"`
	Type  string `json:"type"`
}

// CardInfoResponse is the payload returned by the cardInfo endpoint
type CardInfoResponse struct {
	Bin        string `json:"bin"`
	Bandeira   string `json:"bandeira"`
	Tipo       string `json:"tipo"`
	ImageLight string `json:"imageLight"`
	ImageDark  string `json:"imageDark"`
}

// Brand represents the standardized card brands in the system
type Brand string

// Predefined Brand values
const (
	BrandVisa       Brand = "VISA"
	BrandMastercard Brand = "MASTERCARD"
	BrandDiscover   Brand = "DISCOVER"
	BrandAmex       Brand = "AMERICAN EXPRESS"
)

// String returns the string representation of the Brand
func (b Brand) String() string {
	return string(b)
}

type brandImages struct {
	light string
	dark  string
}

// One table carries both variants so the light and dark mappings cannot
// drift apart.
var brandAssets = map[Brand]brandImages{
	BrandVisa:       {light: "/images/visa-light.png", dark: "/images/visa-dark.png"},
	BrandMastercard: {light: "/images/mastercard-light.png", dark: "/images/mastercard-dark.png"},
	BrandDiscover:   {light: "/images/discover-light.png", dark: "/images/discover-dark.png"},
	BrandAmex:       {light: "/images/amex-light.png", dark: "/images/amex-dark.png"},
}

// BrandImages returns the light and dark logo paths for a brand name as it
// appears in the dataset. Brands without an asset entry get the empty
// placeholder for both variants.
func BrandImages(name string) (light, dark string) {
	b := Brand(strings.ToUpper(strings.TrimSpace(name)))
	assets, ok := brandAssets[b]
	if !ok {
		return EmptyImage, EmptyImage
	}
	return assets.light, assets.dark
}

// BrandFromLeadingDigit infers a brand for a BIN that is missing from the
// dataset. Unmatched leading digits fall back to VISA.
func BrandFromLeadingDigit(bin string) Brand {
	if bin == "" {
		return BrandVisa
	}
	switch bin[0] {
	case '4':
		return BrandVisa
	case '5':
		return BrandMastercard
	case '6':
		return BrandDiscover
	case '3':
		return BrandAmex
	default:
		return BrandVisa
	}
}
