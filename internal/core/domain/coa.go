package domain

// ChartOfAccounts is an in-memory snapshot of a company's account hierarchy.
// Lookup by ID is O(1); the snapshot is immutable once built, so it is safe
// for concurrent readers.
type ChartOfAccounts struct {
	byID     map[string]Account
	children map[string][]string
}

// NewChartOfAccounts builds a snapshot from a list of accounts.
func NewChartOfAccounts(accounts []Account) *ChartOfAccounts {
	c := &ChartOfAccounts{
		byID:     make(map[string]Account, len(accounts)),
		children: make(map[string][]string),
	}
	for _, acc := range accounts {
		c.byID[acc.AccountID] = acc
		if acc.ParentAccountID != "" {
			c.children[acc.ParentAccountID] = append(c.children[acc.ParentAccountID], acc.AccountID)
		}
	}
	return c
}

// Resolve returns the account for the given ID, if present.
func (c *ChartOfAccounts) Resolve(accountID string) (Account, bool) {
	acc, ok := c.byID[accountID]
	return acc, ok
}

// ChildrenOf returns the direct children of the given account, in insertion order.
func (c *ChartOfAccounts) ChildrenOf(accountID string) []Account {
	ids := c.children[accountID]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Account, 0, len(ids))
	for _, id := range ids {
		if acc, ok := c.byID[id]; ok {
			out = append(out, acc)
		}
	}
	return out
}

// PathOf returns the root-to-leaf list of account codes for the given account.
// Used for diagnostics; returns nil if the account is unknown. Traversal
// stops at maxDepth so a parent cycle in bad data terminates.
func (c *ChartOfAccounts) PathOf(accountID string) []string {
	const maxDepth = 64
	acc, ok := c.byID[accountID]
	if !ok {
		return nil
	}
	path := []string{acc.Code}
	for depth := 0; acc.ParentAccountID != "" && depth < maxDepth; depth++ {
		parent, ok := c.byID[acc.ParentAccountID]
		if !ok {
			break
		}
		path = append([]string{parent.Code}, path...)
		acc = parent
	}
	return path
}

// Size returns the number of accounts in the snapshot.
func (c *ChartOfAccounts) Size() int {
	return len(c.byID)
}
