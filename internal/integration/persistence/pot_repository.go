package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/persistence/model"
)

// potRepository implements the adapter.PotRepository interface.
type potRepository struct {
	db *gorm.DB
}

// NewPotRepository creates a new pot repository instance.
func NewPotRepository(db *gorm.DB) adapter.PotRepository {
	return &potRepository{
		db: db,
	}
}

// Create creates a new pot in the database.
func (r *potRepository) Create(ctx context.Context, pot *entity.Pot) error {
	potModel := model.PotFromEntity(pot)
	result := r.db.WithContext(ctx).Create(potModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrPotNameExists
		}
		return result.Error
	}
	return nil
}

// FindByIDAndUser retrieves a pot owned by userID.
func (r *potRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Pot, error) {
	var potModel model.PotModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&potModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPotNotFound
		}
		return nil, result.Error
	}
	return potModel.ToEntity(), nil
}

// FindByUser retrieves all pots of an owner, newest first.
func (r *potRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Pot, error) {
	var potModels []model.PotModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&potModels)
	if result.Error != nil {
		return nil, result.Error
	}

	pots := make([]*entity.Pot, len(potModels))
	for i, pm := range potModels {
		pots[i] = pm.ToEntity()
	}
	return pots, nil
}

// ExistsByUserAndName checks whether the owner already has a pot with name.
func (r *potRepository) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.PotModel{}).
		Where("user_id = ? AND name = ?", userID, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing pot in the database.
func (r *potRepository) Update(ctx context.Context, pot *entity.Pot) error {
	potModel := model.PotFromEntity(pot)
	result := r.db.WithContext(ctx).Save(potModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrPotNameExists
		}
		return result.Error
	}
	return nil
}

// Delete removes a pot owned by userID.
func (r *potRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.PotModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPotNotFound
	}
	return nil
}
