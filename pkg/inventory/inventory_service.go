package inventory

import (
	"Ginraidee/domain"
	"Ginraidee/entities"
	"Ginraidee/pkg/expiry"
	"Ginraidee/pkg/metrics"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	InventoryService interface {
		AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string, lang domain.Language) (domain.InventoryItemResponse, error)
		GetItems(ctx context.Context, userID string, filter expiry.Predicate, lang domain.Language) ([]domain.InventoryItemResponse, error)
		GetItemByID(ctx context.Context, id string, userID string, lang domain.Language) (domain.InventoryItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string, lang domain.Language) (domain.InventoryItemResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
		GetExpiringSoon(ctx context.Context, userID string, lang domain.Language) ([]domain.InventoryItemResponse, error)
		GetItemsByDate(ctx context.Context, userID string, date string, lang domain.Language) ([]domain.InventoryItemResponse, error)
		GetStats(ctx context.Context, userID string) (domain.InventoryStatsResponse, error)
		Snapshot(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		metrics             *metrics.Collector
		logger              *zap.Logger
		now                 func() time.Time
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, metrics *metrics.Collector, logger *zap.Logger, now func() time.Time) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		metrics:             metrics,
		logger:              logger,
		now:                 now,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, req domain.AddInventoryItemRequest, userID string, lang domain.Language) (domain.InventoryItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.InventoryItemResponse{}, domain.ErrParseUUID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.InventoryItemResponse{}, domain.NewValidationError("name", "required")
	}
	expirationDate, err := domain.ParseDate(req.ExpirationDate)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	if req.Quantity < 0 {
		return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
	}
	category, ok := domain.LookupCategory(req.Category)
	if !ok {
		return domain.InventoryItemResponse{}, domain.ErrInvalidCategory
	}
	if _, ok := domain.LookupUnit(req.Unit); !ok {
		return domain.InventoryItemResponse{}, domain.ErrInvalidUnit
	}

	item := &entities.InventoryItem{
		UserID:          userUUID,
		Name:            name,
		Category:        req.Category,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		ExpirationDate:  expirationDate.Time,
		Emoji:           req.Emoji,
		BackgroundColor: req.BackgroundColor,
	}
	// display fields default to the category's
	if item.Emoji == "" {
		item.Emoji = category.Emoji
	}
	if item.BackgroundColor == "" {
		item.BackgroundColor = category.BackgroundColor
	}

	if err := s.inventoryRepository.AddItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}
	s.metrics.ObserveMutation("create")
	s.logger.Debug("inventory item added", zap.String("user_id", userID), zap.String("item_id", item.ID.String()))

	return s.toResponse(item, lang), nil
}

func (s *inventoryService) GetItems(ctx context.Context, userID string, filter expiry.Predicate, lang domain.Language) ([]domain.InventoryItemResponse, error) {
	items, err := s.inventoryRepository.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = expiry.Any
	}

	now := s.now()
	out := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		if !filter(expiry.StatusOf(item.ExpirationDate, now)) {
			continue
		}
		out = append(out, s.toResponseAt(item, now, lang))
	}
	return out, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, id string, userID string, lang domain.Language) (domain.InventoryItemResponse, error) {
	item, err := s.find(ctx, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}
	return s.toResponse(item, lang), nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req domain.UpdateInventoryItemRequest, userID string, lang domain.Language) (domain.InventoryItemResponse, error) {
	item, err := s.find(ctx, id, userID)
	if err != nil {
		return domain.InventoryItemResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.InventoryItemResponse{}, domain.NewValidationError("name", "required")
		}
		item.Name = name
	}
	if req.Category != nil {
		if _, ok := domain.LookupCategory(*req.Category); !ok {
			return domain.InventoryItemResponse{}, domain.ErrInvalidCategory
		}
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.InventoryItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		if _, ok := domain.LookupUnit(*req.Unit); !ok {
			return domain.InventoryItemResponse{}, domain.ErrInvalidUnit
		}
		item.Unit = *req.Unit
	}
	if req.ExpirationDate != nil {
		date, err := domain.ParseDate(*req.ExpirationDate)
		if err != nil {
			return domain.InventoryItemResponse{}, err
		}
		item.ExpirationDate = date.Time
	}
	if req.Emoji != nil {
		item.Emoji = *req.Emoji
	}
	if req.BackgroundColor != nil {
		item.BackgroundColor = *req.BackgroundColor
	}

	if err := s.inventoryRepository.UpdateItem(ctx, item); err != nil {
		return domain.InventoryItemResponse{}, err
	}
	s.metrics.ObserveMutation("update")

	return s.toResponse(item, lang), nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInventoryItemNotFound
	}
	if err := s.inventoryRepository.DeleteItem(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInventoryItemNotFound
		}
		return err
	}
	s.metrics.ObserveMutation("delete")
	return nil
}

func (s *inventoryService) GetExpiringSoon(ctx context.Context, userID string, lang domain.Language) ([]domain.InventoryItemResponse, error) {
	now := s.now()
	cutoff := domain.DateOf(now).AddDays(expiry.DueSoonDays)

	items, err := s.inventoryRepository.GetItemsExpiringBefore(ctx, userID, cutoff.Time)
	if err != nil {
		return nil, err
	}
	return s.toResponses(items, now, lang), nil
}

func (s *inventoryService) GetItemsByDate(ctx context.Context, userID string, date string, lang domain.Language) ([]domain.InventoryItemResponse, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	items, err := s.inventoryRepository.GetItemsBetween(ctx, userID, day.Time, day.AddDays(1).Time)
	if err != nil {
		return nil, err
	}
	return s.toResponses(items, s.now(), lang), nil
}

func (s *inventoryService) GetStats(ctx context.Context, userID string) (domain.InventoryStatsResponse, error) {
	items, err := s.inventoryRepository.GetItems(ctx, userID)
	if err != nil {
		return domain.InventoryStatsResponse{}, err
	}

	now := s.now()
	stats := domain.InventoryStatsResponse{TotalItems: len(items)}
	for _, item := range items {
		switch expiry.StatusOf(item.ExpirationDate, now) {
		case expiry.StatusExpired:
			stats.ExpiredItems++
		case expiry.StatusToday:
			stats.TodayItems++
		case expiry.StatusTomorrow:
			stats.TomorrowItems++
		default:
			stats.FreshItems++
		}
	}
	return stats, nil
}

func (s *inventoryService) Snapshot(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepository.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		out = append(out, toDomain(item))
	}
	return out, nil
}

func (s *inventoryService) find(ctx context.Context, id, userID string) (*entities.InventoryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInventoryItemNotFound
	}
	item, err := s.inventoryRepository.GetItemByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) toResponse(item *entities.InventoryItem, lang domain.Language) domain.InventoryItemResponse {
	return s.toResponseAt(item, s.now(), lang)
}

func (s *inventoryService) toResponses(items []*entities.InventoryItem, now time.Time, lang domain.Language) []domain.InventoryItemResponse {
	out := make([]domain.InventoryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, s.toResponseAt(item, now, lang))
	}
	return out
}

func (s *inventoryService) toResponseAt(item *entities.InventoryItem, now time.Time, lang domain.Language) domain.InventoryItemResponse {
	status, text := expiry.Classify(item.ExpirationDate, now, lang)
	return domain.InventoryItemResponse{
		InventoryItem: toDomain(item),
		Status:        string(status),
		StatusText:    text,
	}
}

func toDomain(item *entities.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ID:              item.ID.String(),
		OwnerID:         item.UserID.String(),
		Name:            item.Name,
		Category:        domain.Category(item.Category),
		Quantity:        item.Quantity,
		Unit:            domain.Unit(item.Unit),
		ExpirationDate:  domain.DateOf(item.ExpirationDate),
		Emoji:           item.Emoji,
		BackgroundColor: item.BackgroundColor,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
