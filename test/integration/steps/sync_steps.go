package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/integration/adapters"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
	"github.com/smartspend/backend/internal/integration/ledgerclient"
	"github.com/smartspend/backend/test/integration/mock"
)

// registerSyncSteps registers steps that drive a sync facade over the HTTP API.
func registerSyncSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the clock is at "([^"]*)"$`, theClockIsAt)
	ctx.Step(`^a sync facade connected to the API$`, aSyncFacadeConnectedToTheAPI)
	ctx.Step(`^a sync facade connected to a remote API that rejects "([^"]*)" "([^"]*)" with status (\d+)$`, aSyncFacadeConnectedToARejectingAPI)
	ctx.Step(`^I plan "([^"]*)" with target (\d+) and price "([^"]*)" through the facade as "([^"]*)"$`, iPlanThroughTheFacade)
	ctx.Step(`^I mark (\d+) of "([^"]*)" purchased for "([^"]*)" on "([^"]*)" through the facade$`, iMarkPurchasedThroughTheFacade)
	ctx.Step(`^I log "([^"]*)" with quantity (\d+) costing "([^"]*)" on "([^"]*)" through the facade$`, iLogThroughTheFacade)
	ctx.Step(`^I flush the facade$`, iFlushTheFacade)
	ctx.Step(`^I refetch the facade$`, iRefetchTheFacade)
	ctx.Step(`^the facade should show purchased quantity (\d+) for "([^"]*)"$`, theFacadeShouldShowPurchasedQuantity)
	ctx.Step(`^the facade should show (\d+) actual items?$`, theFacadeShouldShowActualItems)
	ctx.Step(`^the facade should have (\d+) conflicts?$`, theFacadeShouldHaveConflicts)
	ctx.Step(`^conflict (\d+) should be a storage failure of "([^"]*)" at "([^"]*)"$`, conflictShouldBe)
	ctx.Step(`^the remote API should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, theRemoteAPIShouldHaveReceived)
}

func theClockIsAt(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	tc.clock.SetCurrentTime(at)
	return nil
}

func (tc *TestContext) openFacade(ctx context.Context, baseURL string) error {
	client := ledgerclient.New(baseURL, 5*time.Second)
	tc.facade = ledgersync.New(client, adapters.UUIDGenerator{}, ledgersync.WithClock(tc.clock.Now))
	return tc.facade.Refetch(ctx)
}

// itemID resolves an alias stored by an earlier step, or returns the literal id.
func (tc *TestContext) itemID(alias string) string {
	if id, ok := tc.stored[alias]; ok {
		return id
	}
	return alias
}

func aSyncFacadeConnectedToTheAPI(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.openFacade(ctx, tc.server.URL)
}

func aSyncFacadeConnectedToARejectingAPI(ctx context.Context, method, path string, status int) error {
	tc := GetTestContext(ctx)
	tc.remoteAPI = mock.NewApiServer()
	tc.remoteAPI.Start()
	tc.remoteAPI.SetResponse(http.MethodGet, "/api/v1/snapshot", http.StatusOK, dto.SnapshotResponse{
		PlannedItems: []dto.PlannedItemResponse{},
		ActualItems:  []dto.ActualItemResponse{},
	})
	tc.remoteAPI.SetResponse(method, path, status, dto.ErrorResponse{
		Error: "ledger store unavailable",
		Code:  string(domainerror.ErrCodeStorageFailure),
	})
	return tc.openFacade(ctx, tc.remoteAPI.GetUrl())
}

func iPlanThroughTheFacade(ctx context.Context, name string, target int, price, alias string) error {
	tc := GetTestContext(ctx)
	value, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	item, err := tc.facade.AddPlannedItem(ledgersync.PlannedItemInput{Name: name, TargetQuantity: target, PricePerUnit: value})
	if err != nil {
		return err
	}
	tc.stored[alias] = item.ID
	return nil
}

func iMarkPurchasedThroughTheFacade(ctx context.Context, quantity int, alias, cost, date string) error {
	tc := GetTestContext(ctx)
	value, err := decimal.NewFromString(cost)
	if err != nil {
		return err
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return err
	}
	_, err = tc.facade.MarkPurchased(tc.itemID(alias), quantity, value, day)
	return err
}

func iLogThroughTheFacade(ctx context.Context, name string, quantity int, cost, date string) error {
	tc := GetTestContext(ctx)
	value, err := decimal.NewFromString(cost)
	if err != nil {
		return err
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return err
	}
	_, err = tc.facade.AddActualItem(ledgersync.ActualItemInput{Name: name, Quantity: quantity, TotalCost: value, Date: day})
	return err
}

func iFlushTheFacade(ctx context.Context) error {
	return GetTestContext(ctx).facade.Flush(ctx)
}

func iRefetchTheFacade(ctx context.Context) error {
	return GetTestContext(ctx).facade.Refetch(ctx)
}

func theFacadeShouldShowPurchasedQuantity(ctx context.Context, expected int, alias string) error {
	tc := GetTestContext(ctx)
	state := tc.facade.State()
	idx, ok := state.FindPlanned(tc.itemID(alias))
	if !ok {
		return fmt.Errorf("planned item %s not in facade state", alias)
	}
	if got := state.PlannedItems[idx].PurchasedQuantity; got != expected {
		return fmt.Errorf("expected purchased quantity %d, got %d", expected, got)
	}
	return nil
}

func theFacadeShouldShowActualItems(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if got := len(tc.facade.State().ActualItems); got != expected {
		return fmt.Errorf("expected %d actual items in facade state, got %d", expected, got)
	}
	return nil
}

func theFacadeShouldHaveConflicts(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if got := len(tc.facade.Conflicts()); got != expected {
		return fmt.Errorf("expected %d conflicts, got %d: %v", expected, got, tc.facade.Conflicts())
	}
	return nil
}

func conflictShouldBe(ctx context.Context, index int, operation, at string) error {
	tc := GetTestContext(ctx)
	conflicts := tc.facade.Conflicts()
	if index < 1 || index > len(conflicts) {
		return fmt.Errorf("conflict %d out of range, facade has %d", index, len(conflicts))
	}
	conflict := conflicts[index-1]

	if string(conflict.Operation) != operation {
		return fmt.Errorf("expected operation %s, got %s", operation, conflict.Operation)
	}
	if !errors.Is(conflict, domainerror.ErrStorage) {
		return fmt.Errorf("expected storage failure, got %v", conflict.Err)
	}
	expectedAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return err
	}
	if !conflict.At.Equal(expectedAt) {
		return fmt.Errorf("expected conflict at %s, got %s", expectedAt, conflict.At)
	}
	return nil
}

func theRemoteAPIShouldHaveReceived(ctx context.Context, expected int, method, path string) error {
	tc := GetTestContext(ctx)
	if got := tc.remoteAPI.RequestCount(method, path); got != expected {
		return fmt.Errorf("expected %d %s %s requests, got %d", expected, method, path, got)
	}
	return nil
}
