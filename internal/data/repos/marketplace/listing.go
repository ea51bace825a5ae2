package marketplace

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/designhire-backend/internal/domain"
	"github.com/yungbote/designhire-backend/internal/platform/dbctx"
	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

// HoursPerYear converts hourly rates into annual figures for salary filters.
const HoursPerYear = 2000

type ListingFilter struct {
	Status           string
	Location         string
	RemotePreference string
	MinSalary        *float64
	MaxSalary        *float64
	Skills           []string
	Skip             int
	Limit            int
}

type ListingRepo interface {
	Create(dbc dbctx.Context, listings []*types.Listing) ([]*types.Listing, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Listing, error)
	Search(dbc dbctx.Context, filter ListingFilter) ([]*types.Listing, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Listing, error)
	Save(dbc dbctx.Context, listing *types.Listing) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type listingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListingRepo(db *gorm.DB, baseLog *logger.Logger) ListingRepo {
	return &listingRepo{db: db, log: baseLog.With("repo", "ListingRepo")}
}

func (r *listingRepo) Create(dbc dbctx.Context, listings []*types.Listing) ([]*types.Listing, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(listings) == 0 {
		return []*types.Listing{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Listing, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var l types.Listing
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&l).Error; err != nil {
		return nil, err
	}
	if l.ID == uuid.Nil {
		return nil, nil
	}
	return &l, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded substring LIKE pattern. User input is
// matched literally, so % and _ in a filter do not act as wildcards.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func (r *listingRepo) Search(dbc dbctx.Context, filter ListingFilter) ([]*types.Listing, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Model(&types.Listing{}).
		Where("is_active = ?", true).
		Where("status = ?", filter.Status)

	if loc := strings.TrimSpace(filter.Location); loc != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(loc))
	}
	if filter.RemotePreference != "" {
		q = q.Where("remote_preference = ?", filter.RemotePreference)
	}
	if filter.MinSalary != nil {
		q = q.Where("(salary_max >= ? OR hourly_rate * ? >= ?)", *filter.MinSalary, HoursPerYear, *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		q = q.Where("(salary_min <= ? OR hourly_rate * ? <= ?)", *filter.MaxSalary, HoursPerYear, *filter.MaxSalary)
	}
	if len(filter.Skills) > 0 {
		clauses := make([]string, 0, len(filter.Skills))
		args := make([]interface{}, 0, len(filter.Skills))
		for _, s := range filter.Skills {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			clauses = append(clauses, `LOWER(CAST(skills_required AS TEXT)) LIKE ? ESCAPE '\'`)
			args = append(args, containsPattern(s))
		}
		if len(clauses) > 0 {
			q = q.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
	}

	var out []*types.Listing
	if err := q.Order("is_boosted DESC").
		Order("created_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *listingRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, skip, limit int) ([]*types.Listing, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Listing
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

func (r *listingRepo) Save(dbc dbctx.Context, listing *types.Listing) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Save(listing).Error
}

func (r *listingRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.Listing{}).Error
}

func (r *listingRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Listing{}).
		Where("id = ?", id).
		Updates(updates).Error
}
