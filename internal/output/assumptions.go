package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Health and education cess: 4% of tax plus surcharge",
	"Surcharge: flat band rate on the whole tax, no marginal relief",
	"Section 87A rebate: not applied",
	"Standard deduction: claimed explicitly, ₹50,000 under both regimes",
	"Suggested savings use the old regime's current marginal slab rate",
}
