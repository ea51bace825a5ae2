package marketplace

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type PaymentRepo interface {
	Create(dbc dbctx.Context, payments []*types.Payment) ([]*types.Payment, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Payment, error)
	GetByCheckoutSessionID(dbc dbctx.Context, sessionID string) (*types.Payment, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Payment, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	return &paymentRepo{db: db, log: baseLog.With("repo", "PaymentRepo")}
}

func (r *paymentRepo) Create(dbc dbctx.Context, payments []*types.Payment) ([]*types.Payment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(payments) == 0 {
		return []*types.Payment{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepo) first(dbc dbctx.Context, query string, args ...interface{}) (*types.Payment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var p types.Payment
	if err := transaction.WithContext(dbc.Ctx).
		Where(query, args...).
		Limit(1).
		Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		return nil, nil
	}
	return &p, nil
}

func (r *paymentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Payment, error) {
	return r.first(dbc, "id = ?", id)
}

func (r *paymentRepo) GetByCheckoutSessionID(dbc dbctx.Context, sessionID string) (*types.Payment, error) {
	return r.first(dbc, "stripe_checkout_session_id = ?", sessionID)
}

func (r *paymentRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Payment, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Payment
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
}
