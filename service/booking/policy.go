package booking

// Policy decides whether a booking for an item skips owner approval and goes
// straight to AWAITING_PAYMENT. Approval rules are configuration, not code.
type Policy interface {
	AutoApprove(itemID string) bool
}

// AllowList auto-approves a fixed set of item ids.
type AllowList map[string]struct{}

func NewAllowList(ids ...string) AllowList {
	a := make(AllowList, len(ids))
	for _, id := range ids {
		a[id] = struct{}{}
	}
	return a
}

func (a AllowList) AutoApprove(itemID string) bool {
	_, ok := a[itemID]
	return ok
}
