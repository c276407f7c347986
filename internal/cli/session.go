package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/integration/adapters"
	"github.com/smartspend/backend/internal/integration/ledgerclient"
)

// openLedger returns a facade loaded with the current durable ledger.
// Callers must Close it.
func (o *RootOptions) openLedger(ctx context.Context) (*ledgersync.Facade, error) {
	client := ledgerclient.New(o.config.API.BaseURL, o.config.API.Timeout.Duration)
	facade := ledgersync.New(client, adapters.UUIDGenerator{},
		ledgersync.WithQueueSize(o.config.Sync.QueueSize),
		ledgersync.WithWriteTimeout(o.config.Sync.WriteTimeout.Duration),
	)
	if err := facade.Refetch(ctx); err != nil {
		facade.Close()
		return nil, fmt.Errorf("loading ledger from %s: %w", o.config.API.BaseURL, err)
	}
	return facade, nil
}

// commit waits for the queued writes and reports any the API rejected.
func commit(ctx context.Context, facade *ledgersync.Facade) error {
	if err := facade.Flush(ctx); err != nil {
		return err
	}
	conflicts := facade.Conflicts()
	if len(conflicts) == 0 {
		return nil
	}
	errs := make([]error, 0, len(conflicts))
	for _, c := range conflicts {
		errs = append(errs, c)
	}
	return fmt.Errorf("ledger API rejected %d write(s): %w", len(conflicts), errors.Join(errs...))
}
