package leave

import "github.com/shopspring/decimal"

// Category enum
type Category string

const (
	CategoryAnnual      Category = "annual"
	CategorySick        Category = "sick"
	CategoryBereavement Category = "bereavement"
	CategoryMaternity   Category = "maternity"
	CategoryUnpaid      Category = "unpaid"
)

// Entitlement is the yearly allotment for one category. Unlimited categories
// (unpaid leave) report no numeric remaining balance.
type Entitlement struct {
	Category  Category
	BaseDays  int
	Unlimited bool
}

// DefaultEntitlements mirrors the Fijian statutory minimums: 10 annual,
// 10 sick, 3 bereavement, 84 maternity, unpaid unbounded.
var DefaultEntitlements = []Entitlement{
	{Category: CategoryAnnual, BaseDays: 10},
	{Category: CategorySick, BaseDays: 10},
	{Category: CategoryBereavement, BaseDays: 3},
	{Category: CategoryMaternity, BaseDays: 84},
	{Category: CategoryUnpaid, Unlimited: true},
}

// IsValidCategory reports whether s names a known leave category.
func IsValidCategory(s string) bool {
	switch Category(s) {
	case CategoryAnnual, CategorySick, CategoryBereavement, CategoryMaternity, CategoryUnpaid:
		return true
	}
	return false
}

// Balance is derived on demand from approved leave batches; it is never
// persisted. Remaining is floored at zero.
type Balance struct {
	Category      Category        `json:"category"`
	Year          int             `json:"year"`
	BaseDays      int             `json:"base_days"`
	CarriedOver   decimal.Decimal `json:"carried_over"`
	Entitlement   decimal.Decimal `json:"entitlement"`
	DaysUsed      decimal.Decimal `json:"days_used"`
	Remaining     decimal.Decimal `json:"remaining"`
	Unlimited     bool            `json:"unlimited"`
}
