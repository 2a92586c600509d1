package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"places_backend/internal/feature/places/usecase"
)

// errTxFinished はCommit済みのトランザクションを再度Commitした場合に返されます。
var errTxFinished = errors.New("transaction already finished")

type gormTxManager struct {
	db *gorm.DB
}

var _ usecase.TxManager = (*gormTxManager)(nil)

func NewTxManager(db *gorm.DB) *gormTxManager {
	return &gormTxManager{db: db}
}

// Begin はトランザクションを開始します。呼び出し側は直後に Rollback を defer します。
func (m *gormTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTx{tx: tx}, nil
}

type gormTx struct {
	tx   *gorm.DB
	done bool
}

func (t *gormTx) Places() usecase.TxPlaceRepository { return &placeGorm{db: t.tx} }

// Owners はトランザクション内で所有者の行をロックして読むリポジトリを返します。
func (t *gormTx) Owners() usecase.OwnerRepository { return &ownerGorm{db: t.tx, forUpdate: true} }

func (t *gormTx) Commit() error {
	if t.done {
		return errTxFinished
	}
	t.done = true
	return t.tx.Commit().Error
}

// Rollback はCommit後または二度目の呼び出しでは何もしません。
func (t *gormTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback().Error
}
