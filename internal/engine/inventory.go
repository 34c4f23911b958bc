package engine

// Aggregate folds Results into an Inventory. It is deterministic and
// order-preserving: AllResults keeps the input order, sub-totals are plain
// sums over the matching scope/method predicate, and aggregation is
// associative — aggregating two halves and summing their sub-totals equals
// aggregating the whole.
//
// A market-based Scope 2 Result is never folded into the location-based
// sub-total (and vice versa), and the grand total uses the location-based
// sub-total by convention to avoid double counting.
func Aggregate(results []Result, name string) *Inventory {
	inv := &Inventory{
		Name:       name,
		AllResults: append([]Result(nil), results...),
	}

	for _, r := range results {
		switch r.Scope {
		case Scope1:
			inv.Scope1Tonnes += r.TotalCO2eTonnes
		case Scope2:
			switch r.Method {
			case MarketBased:
				inv.Scope2MarketTonnes += r.TotalCO2eTonnes
			default:
				inv.Scope2LocationTonnes += r.TotalCO2eTonnes
			}
		case Scope3:
			inv.Scope3Tonnes += r.TotalCO2eTonnes
		}
	}

	inv.TotalTonnes = inv.Scope1Tonnes + inv.Scope2LocationTonnes + inv.Scope3Tonnes
	return inv
}
