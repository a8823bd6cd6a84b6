package models

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"

	SubscriptionTierFree = "free"
	UserStatusActive     = "active"
)

// Subscription is an illustrative billing record. Nothing in this service mutates it.
type Subscription struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	Email     string  `json:"email"`
	Plan      string  `json:"plan"`
	Status    string  `json:"status"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Amount    string  `json:"amount"`
	Price     float64 `json:"-"`
}

// SubscriptionStats aggregates a subscription list.
type SubscriptionStats struct {
	Active    int     `json:"active"`
	Revenue   float64 `json:"revenue"`
	Cancelled int     `json:"cancelled"`
}
