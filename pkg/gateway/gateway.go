// Package gateway talks to the inventory REST API. Every call is a single
// round trip; nothing is retried.
package gateway

import (
	"Ginraidee/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const inventoryPath = "/api/v1/inventory"

type (
	// Session identifies who the gateway acts for. It is passed in rather
	// than read from process state so several sessions can coexist.
	Session struct {
		BaseURL    string
		Token      string
		OwnerID    string
		HTTPClient *http.Client
	}

	InventoryGateway interface {
		List(ctx context.Context) ([]domain.InventoryItem, error)
		Get(ctx context.Context, id string) (domain.InventoryItem, error)
		Create(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItem, error)
		Update(ctx context.Context, id string, req domain.UpdateInventoryItemRequest) (domain.InventoryItem, error)
		Delete(ctx context.Context, id string) error
		ExpiringSoon(ctx context.Context) ([]domain.InventoryItem, error)
		ByDate(ctx context.Context, date domain.Date) ([]domain.InventoryItem, error)
	}

	transport struct {
		baseURL string
		token   string
		client  *http.Client
		logger  *zap.Logger
	}

	inventoryGateway struct {
		*transport
	}
)

func newTransport(session Session, logger *zap.Logger) *transport {
	client := session.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &transport{
		baseURL: strings.TrimRight(session.BaseURL, "/"),
		token:   session.Token,
		client:  client,
		logger:  logger,
	}
}

func NewInventoryGateway(session Session, logger *zap.Logger) InventoryGateway {
	return &inventoryGateway{newTransport(session, logger)}
}

func (g *inventoryGateway) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := g.do(ctx, "list", http.MethodGet, inventoryPath, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *inventoryGateway) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	return g.record(ctx, "get", http.MethodGet, inventoryPath+"/"+url.PathEscape(id), nil)
}

func (g *inventoryGateway) Create(ctx context.Context, req domain.AddInventoryItemRequest) (domain.InventoryItem, error) {
	return g.record(ctx, "create", http.MethodPost, inventoryPath, req)
}

func (g *inventoryGateway) Update(ctx context.Context, id string, req domain.UpdateInventoryItemRequest) (domain.InventoryItem, error) {
	return g.record(ctx, "update", http.MethodPut, inventoryPath+"/"+url.PathEscape(id), req)
}

// record runs a call that must answer with exactly one stored item.
func (g *inventoryGateway) record(ctx context.Context, op, method, path string, body any) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := g.do(ctx, op, method, path, body, &item); err != nil {
		return domain.InventoryItem{}, err
	}
	if item.ID == "" {
		return domain.InventoryItem{}, &domain.PersistenceError{
			Op:      op,
			Class:   domain.StatusClassServer,
			Message: "malformed response: missing item id",
		}
	}
	return item, nil
}

func (g *inventoryGateway) Delete(ctx context.Context, id string) error {
	return g.do(ctx, "delete", http.MethodDelete, inventoryPath+"/"+url.PathEscape(id), nil, nil)
}

func (g *inventoryGateway) ExpiringSoon(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := g.do(ctx, "expiring", http.MethodGet, inventoryPath+"/expiring/soon", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *inventoryGateway) ByDate(ctx context.Context, date domain.Date) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := g.do(ctx, "by_date", http.MethodGet, inventoryPath+"/by-date/"+date.String(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *transport) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("api request failed", zap.String("op", op), zap.Error(err))
		return &domain.PersistenceError{
			Op:      op,
			Class:   domain.StatusClassServer,
			Message: "storage unreachable",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.PersistenceError{
			Op:         op,
			Class:      domain.StatusClassServer,
			StatusCode: resp.StatusCode,
			Message:    "read response body",
			Cause:      err,
		}
	}

	var envelope domain.Response
	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := envelope.Error
		if msg == "" {
			msg = envelope.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		g.logger.Debug("api request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg),
		)
		return &domain.PersistenceError{
			Op:         op,
			Class:      domain.ClassifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return &domain.PersistenceError{
			Op:         op,
			Class:      domain.StatusClassServer,
			StatusCode: resp.StatusCode,
			Message:    "malformed response",
			Cause:      decodeErr,
		}
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &domain.PersistenceError{
			Op:         op,
			Class:      domain.StatusClassServer,
			StatusCode: resp.StatusCode,
			Message:    "malformed response data",
			Cause:      err,
		}
	}
	return nil
}
