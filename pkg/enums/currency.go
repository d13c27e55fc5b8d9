package enums

// Currency is an ISO 4217 code.
type Currency string

const CurrencySAR Currency = "SAR"

func (c Currency) String() string {
	return string(c)
}
