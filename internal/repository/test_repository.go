package repository

import (
	"gorm.io/gorm"

	"github.com/quickgrade/quickgrade/internal/model"
)

type TestRepository interface {
	// CreateWithSeedQuestion inserts the test and its first question in one
	// transaction; both are committed together or not at all.
	CreateWithSeedQuestion(test *model.Test, seed *model.Question) error
	FindByID(id string) (*model.Test, error)
	// FindByIDOwned scopes the lookup to the owner at query time, so an
	// existing but unowned test is indistinguishable from a missing one.
	FindByIDOwned(id, ownerID string) (*model.Test, error)
	// OwnerID fetches only the owner reference, no full record.
	OwnerID(id string) (string, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) CreateWithSeedQuestion(test *model.Test, seed *model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		seed.TestID = test.ID
		return tx.Create(seed).Error
	})
}

func (r *testRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDOwned(id, ownerID string) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) OwnerID(id string) (string, error) {
	var ownerID string
	err := r.db.Model(&model.Test{}).
		Select("owner_id").
		Where("id = ?", id).
		Take(&ownerID).Error
	return ownerID, err
}
