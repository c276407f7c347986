// Package ledgerclient talks to the ledger HTTP API so a remote process can
// use it as the durable side of a sync facade.
package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/backend/internal/application/ledgersync"
	"github.com/smartspend/backend/internal/domain/entity"
	domainerror "github.com/smartspend/backend/internal/domain/error"
	"github.com/smartspend/backend/internal/integration/entrypoint/dto"
)

const apiPrefix = "/api/v1"

// ErrUnexpectedResponse is returned when the API answers with a body the client cannot read.
var ErrUnexpectedResponse = errors.New("unexpected response from ledger API")

// Client is an HTTP implementation of ledgersync.DurableLedger.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ledgersync.DurableLedger = (*Client)(nil)

// New creates a client for the API at baseURL, e.g. http://localhost:8080.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Snapshot reads the whole ledger in one request.
func (c *Client) Snapshot(ctx context.Context) (*entity.FinancialSnapshot, error) {
	var resp dto.SnapshotResponse
	if err := c.do(ctx, http.MethodGet, "/snapshot", nil, &resp); err != nil {
		return nil, err
	}
	return fromSnapshotResponse(resp)
}

// SaveBudget stores the budget amount.
func (c *Client) SaveBudget(ctx context.Context, amount decimal.Decimal) error {
	money := dto.NewMoney(amount)
	return c.do(ctx, http.MethodPost, "/budget", dto.UpdateBudgetRequest{Amount: &money}, nil)
}

// CreatePlannedItem stores a new planned item under its local id.
func (c *Client) CreatePlannedItem(ctx context.Context, item entity.PlannedItem) error {
	return c.do(ctx, http.MethodPost, "/planned-items", toPlannedItemRequest(item), nil)
}

// UpdatePlannedItem stores the editable fields of item.
func (c *Client) UpdatePlannedItem(ctx context.Context, item entity.PlannedItem) error {
	req := toPlannedItemRequest(item)
	req.ID = ""
	return c.do(ctx, http.MethodPut, "/planned-items/"+item.ID, req, nil)
}

// DeletePlannedItem deletes the planned item.
func (c *Client) DeletePlannedItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/planned-items/"+id, nil, nil)
}

// CreateActualItem stores a new actual item under its local id.
func (c *Client) CreateActualItem(ctx context.Context, item entity.ActualItem) error {
	return c.do(ctx, http.MethodPost, "/actual-items", toActualItemRequest(item), nil)
}

// UpdateActualItem replaces the actual item.
func (c *Client) UpdateActualItem(ctx context.Context, item entity.ActualItem) error {
	req := toActualItemRequest(item)
	req.ID = ""
	return c.do(ctx, http.MethodPut, "/actual-items/"+item.ID, req, nil)
}

// DeleteActualItem deletes the actual item.
func (c *Client) DeleteActualItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/actual-items/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerror.NewStorageError(method+" "+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerror.NewStorageError(method+" "+path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// decodeError rebuilds the LedgerError the API reported so errors.Is on the
// kind sentinels works across the wire.
func decodeError(status int, data []byte) error {
	var body dto.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return domainerror.NewStorageError("call ledger API", fmt.Errorf("%w: status %d", ErrUnexpectedResponse, status))
	}

	message := body.Error
	if body.Details != "" {
		message += " (" + body.Details + ")"
	}
	return domainerror.NewLedgerError(domainerror.LedgerErrorCode(body.Code), message, nil)
}

func toPlannedItemRequest(item entity.PlannedItem) dto.PlannedItemRequest {
	target := item.TargetQuantity
	price := dto.NewMoney(item.PricePerUnit)
	return dto.PlannedItemRequest{
		ID:             item.ID,
		Name:           item.Name,
		TargetQuantity: &target,
		PricePerUnit:   &price,
	}
}

func toActualItemRequest(item entity.ActualItem) dto.ActualItemRequest {
	quantity := item.Quantity
	cost := dto.NewMoney(item.TotalCost)
	req := dto.ActualItemRequest{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  &quantity,
		TotalCost: &cost,
		Date:      item.Date.Format(entity.DateLayout),
	}
	if item.PlannedItemID != nil {
		id := *item.PlannedItemID
		req.PlannedItemID = &id
	}
	return req
}

func fromSnapshotResponse(resp dto.SnapshotResponse) (*entity.FinancialSnapshot, error) {
	snapshot := &entity.FinancialSnapshot{
		Budget:       resp.Budget.Decimal,
		PlannedItems: make([]entity.PlannedItem, 0, len(resp.PlannedItems)),
		ActualItems:  make([]entity.ActualItem, 0, len(resp.ActualItems)),
	}
	for _, p := range resp.PlannedItems {
		item := entity.NewPlannedItem(p.ID, p.Name, p.TargetQuantity, p.PricePerUnit.Decimal)
		item.PurchasedQuantity = p.PurchasedQuantity
		snapshot.PlannedItems = append(snapshot.PlannedItems, *item)
	}
	for _, a := range resp.ActualItems {
		date, err := entity.ParseDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
		}
		linked := ""
		if a.PlannedItemID != nil {
			linked = *a.PlannedItemID
		}
		snapshot.ActualItems = append(snapshot.ActualItems, *entity.NewActualItem(a.ID, a.Name, a.Quantity, a.TotalCost.Decimal, date, linked))
	}
	return snapshot, nil
}
