package adapters

import (
	"github.com/google/uuid"

	"github.com/smartspend/backend/internal/application/adapter"
)

// UUIDGenerator issues random UUID strings as ledger item identifiers.
type UUIDGenerator struct{}

var _ adapter.IDGenerator = UUIDGenerator{}

// NewID returns a new random UUID.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
