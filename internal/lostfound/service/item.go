package service

import (
	"context"
	"errors"
	"sync"

	"campusconnect/internal/activity"
	lostfounderrors "campusconnect/internal/lostfound/errors"
	"campusconnect/internal/lostfound/repository"
	"campusconnect/internal/lostfound/validator"
	"campusconnect/pkg/auth"
	"campusconnect/pkg/config"
	apperrors "campusconnect/pkg/errors"
	"campusconnect/pkg/model"
	"campusconnect/pkg/sanitizer"
	"campusconnect/pkg/validation"
)

type ItemService interface {
	Create(ctx context.Context, req *model.LostFoundRequest) (*model.LostFoundItem, error)
	GetByID(ctx context.Context, id string) (*model.LostFoundItem, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.LostFoundItem, int64, error)
	Delete(ctx context.Context, id string) error
}

type itemService struct {
	repo      repository.ItemRepository
	validator *validator.ItemValidator
	publisher activity.Publisher
	cfg       *config.Config
}

func NewItemService(
	repo repository.ItemRepository,
	validator *validator.ItemValidator,
	publisher activity.Publisher,
	cfg *config.Config,
) ItemService {
	return &itemService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *itemService) Create(ctx context.Context, req *model.LostFoundRequest) (*model.LostFoundItem, error) {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return nil, apperrors.Unauthorized("You must be signed in to post an item")
	}

	item := &model.LostFoundItem{
		ItemName:    sanitizer.SanitizeTitle(req.ItemName),
		Description: sanitizer.SanitizeDescription(req.Description),
		Date:        sanitizer.SanitizeDate(req.Date),
		Location:    sanitizer.SanitizeTitle(req.Location),
		Contact:     sanitizer.SanitizeContact(req.Contact),
		UserID:      user.ID,
	}
	if err := s.validator.Validate(item); err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Invalid item", verrs.Details())
		}
		return nil, apperrors.Validation("Invalid item", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.cfg.Log.Error("Failed to create lost and found item", "item_name", item.ItemName, "error", err)
		return nil, apperrors.Internal("Failed to post item. Please try again.", err)
	}

	s.cfg.Log.Info("Lost and found item created", "item_id", item.ID, "user_id", item.UserID)

	activity.Notify(ctx, s.publisher, s.cfg.Log, activity.Activity{
		Type:       activity.LostFoundCreated,
		ResourceID: item.ID,
		ActorID:    user.ID,
		Subject:    item.ItemName,
		Date:       item.Date,
		Location:   item.Location,
	}, s.cfg.WriteTimeout)

	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*model.LostFoundItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(id, err)
	}
	return item, nil
}

func (s *itemService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.LostFoundItem, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		items    []*model.LostFoundItem
		count    int64
		countErr error
		findErr  error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		count, countErr = s.repo.Count(ctx)
	}()
	go func() {
		defer wg.Done()
		items, findErr = s.repo.FindAll(ctx, limit, offset)
	}()
	wg.Wait()

	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count items", countErr)
	}
	if findErr != nil {
		return nil, 0, apperrors.Internal("Failed to retrieve items", findErr)
	}

	return items, count, nil
}

// Delete removes an item posted by the caller.
func (s *itemService) Delete(ctx context.Context, id string) error {
	user, ok := auth.CurrentUser(ctx)
	if !ok {
		return apperrors.Unauthorized("You must be signed in to remove an item")
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapLookupError(id, err)
	}
	if item.UserID != user.ID {
		return apperrors.Forbidden("You can only remove items you posted")
	}

	if err := s.repo.DeleteOwned(ctx, id, user.ID); err != nil {
		return mapLookupError(id, err)
	}

	s.cfg.Log.Info("Lost and found item deleted", "item_id", id, "user_id", user.ID)

	activity.Notify(ctx, s.publisher, s.cfg.Log, activity.Activity{
		Type:       activity.LostFoundDeleted,
		ResourceID: id,
		ActorID:    user.ID,
		Subject:    item.ItemName,
	}, s.cfg.WriteTimeout)

	return nil
}

func mapLookupError(id string, err error) error {
	switch {
	case errors.Is(err, lostfounderrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid item ID format")
	case errors.Is(err, lostfounderrors.ErrNotFound):
		return apperrors.NotFoundWithID("Item", id)
	default:
		return apperrors.Internal("Failed to retrieve item", err)
	}
}
