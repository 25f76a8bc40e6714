package repository

import (
	"context"
	"strings"
	"time"

	"bookalink/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, accountID string) (*model.Account, error)
	MergeMetadata(ctx context.Context, accountID string, metadata map[string]interface{}) error
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	return storeErr("create account", r.db.WithContext(ctx).Create(account).Error)
}

func (r *accountRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&account).Error
	if err != nil {
		return nil, storeErr("find account", err)
	}

	return &account, nil
}

func (r *accountRepoImpl) FindByID(ctx context.Context, accountID string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", accountID).
		First(&account).Error
	if err != nil {
		return nil, storeErr("find account", err)
	}

	return &account, nil
}

func (r *accountRepoImpl) MergeMetadata(ctx context.Context, accountID string, metadata map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account model.Account
		if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
			return storeErr("merge account metadata", err)
		}

		merged := datatypes.JSONMap{}
		for k, v := range account.Metadata {
			merged[k] = v
		}
		for k, v := range metadata {
			merged[k] = v
		}

		err := tx.Model(&model.Account{}).
			Where("id = ?", accountID).
			Updates(map[string]interface{}{
				"metadata":   merged,
				"updated_at": time.Now(),
			}).Error
		return storeErr("merge account metadata", err)
	})
}
