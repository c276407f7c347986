package adapter

// IDGenerator supplies unique identifiers for new ledger items.
type IDGenerator interface {
	NewID() string
}
