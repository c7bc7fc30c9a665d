package query

// Order selects the deterministic (or intentionally randomized) row
// ordering a resolved country implies.
type Order int

const (
	// OrderDefault: null posting dates last, then newest first, id as the
	// stable tie-break.
	OrderDefault Order = iota
	// OrderRandom spreads exposure evenly across listings (EU searches).
	OrderRandom
	// OrderHighPay tiers San Francisco, New York, Zurich ahead of the
	// rest, default ordering within each tier.
	OrderHighPay
)

// OrderFor maps a country filter to its ordering regime.
func OrderFor(cf CountryFilter) Order {
	switch cf.Kind {
	case CountryEU:
		return OrderRandom
	case CountryHighPay:
		return OrderHighPay
	default:
		return OrderDefault
	}
}

const defaultOrderSQL = "(posted_date IS NULL) ASC, posted_date DESC, id DESC"

// SQL renders the ORDER BY clause. The fragments contain no user input and
// are identical in both dialects.
func (o Order) SQL() string {
	switch o {
	case OrderRandom:
		return "ORDER BY RANDOM()"
	case OrderHighPay:
		return "ORDER BY CASE" +
			" WHEN LOWER(location) LIKE '%san francisco%' THEN 0" +
			" WHEN LOWER(location) LIKE '%new york%' THEN 1" +
			" WHEN LOWER(location) LIKE '%zurich%' THEN 2" +
			" ELSE 3 END, " + defaultOrderSQL
	default:
		return "ORDER BY " + defaultOrderSQL
	}
}
