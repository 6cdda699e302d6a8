package services

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"clubhub/internal/events"
	"clubhub/internal/rbac"

	"gorm.io/gorm"
)

// BaseService interface defines common CRUD operations. Every read takes
// the tenant scope decision computed by the rbac layer; the service applies
// it mechanically and never widens it.
type BaseService[T any] interface {
	Create(ctx context.Context, entity *T, includes ...string) error
	Get(ctx context.Context, scope rbac.ScopeDecision, id string, includes ...string) (*T, error)
	List(ctx context.Context, scope rbac.ScopeDecision, page, limit int, filters map[string]interface{}, sortFields []string, order string, includes ...string) ([]T, int64, error)
	Update(ctx context.Context, scope rbac.ScopeDecision, id string, entity *T, includes ...string) error
	Delete(ctx context.Context, scope rbac.ScopeDecision, id string) error
}

// BaseServiceImpl implements BaseService
type BaseServiceImpl[T any] struct {
	db        *gorm.DB
	modelType T
}

func GormTableName(db *gorm.DB, v any) string {
	struct_name := reflect.TypeOf(v).Name()
	return db.NamingStrategy.TableName(struct_name)
}

// NewBaseService creates a new base service
func NewBaseService[T any](db *gorm.DB, modelType T) BaseService[T] {
	return &BaseServiceImpl[T]{
		db:        db,
		modelType: modelType,
	}
}

// applyIncludes adds preload statements to the query for each include
func (s *BaseServiceImpl[T]) applyIncludes(query *gorm.DB, includes ...string) *gorm.DB {
	for _, include := range includes {
		query = query.Preload(include)
	}
	return query
}

// applyScope narrows the query to the effective tenant. ScopeNone is
// handled by the callers before a query is ever built.
func (s *BaseServiceImpl[T]) applyScope(query *gorm.DB, scope rbac.ScopeDecision) *gorm.DB {
	if scope.Kind == rbac.ScopeClub && s.hasClubID() {
		query = query.Where("club_id = ?", scope.ClubID)
	}
	return query
}

// hasClubID reports whether the model carries a tenant column. Club itself
// is scoped by primary key instead.
func (s *BaseServiceImpl[T]) hasClubID() bool {
	entityType := reflect.TypeOf(s.modelType)
	_, found := entityType.FieldByName("ClubID")
	return found
}

func (s *BaseServiceImpl[T]) Create(ctx context.Context, entity *T, includes ...string) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return err
	}

	// Reload the entity with includes if any are specified
	if len(includes) > 0 {
		if err := s.applyIncludes(s.db.WithContext(ctx), includes...).First(entity, "id = ?", reflect.ValueOf(*entity).FieldByName("ID").String()).Error; err != nil {
			return err
		}
	}

	events.Emit(fmt.Sprintf("%s.created", GormTableName(s.db, s.modelType)), entity)

	return nil
}

func (s *BaseServiceImpl[T]) Get(ctx context.Context, scope rbac.ScopeDecision, id string, includes ...string) (*T, error) {
	if scope.Kind == rbac.ScopeNone {
		return nil, gorm.ErrRecordNotFound
	}

	var entity T
	query := s.db.WithContext(ctx)
	query = s.applyIncludes(query, includes...)
	query = s.applyScope(query, scope)

	// filter deleted entities
	query = query.Where("is_deleted = ?", false)

	if err := query.First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *BaseServiceImpl[T]) List(ctx context.Context, scope rbac.ScopeDecision, page, limit int, filters map[string]interface{}, sortFields []string, order string, includes ...string) ([]T, int64, error) {
	// Fail closed without touching the store.
	if scope.Kind == rbac.ScopeNone {
		return []T{}, 0, nil
	}

	var entities []T
	var total int64

	query := s.db.WithContext(ctx).Model(s.modelType)

	// Apply filters
	for key, value := range filters {
		query = query.Where(key+" = ?", value)
	}

	query = s.applyScope(query, scope)
	query = s.applyIncludes(query, includes...)

	// Apply pagination
	if page > 0 && limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}

	// Apply sort
	if len(sortFields) > 0 {
		query = query.Order(fmt.Sprintf("%s %s", sortFields[0], order))
	}

	// filter deleted entities
	query = query.Where("is_deleted = ?", false)

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Execute query
	if err := query.Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (s *BaseServiceImpl[T]) Update(ctx context.Context, scope rbac.ScopeDecision, id string, entity *T, includes ...string) error {
	if scope.Kind == rbac.ScopeNone {
		return gorm.ErrRecordNotFound
	}

	query := s.db.WithContext(ctx).Model(entity).Where("id = ? AND is_deleted = ?", id, false)
	query = s.applyScope(query, scope)

	if err := query.Omit("id").Omit("club_id").Updates(entity).Error; err != nil {
		return err
	}

	// Reload the entity with includes if any are specified
	if len(includes) > 0 {
		if err := s.applyIncludes(s.db.WithContext(ctx), includes...).First(entity, "id = ?", id).Error; err != nil {
			return err
		}
	}

	events.Emit(fmt.Sprintf("%s.updated", GormTableName(s.db, s.modelType)), entity)

	return nil
}

func (s *BaseServiceImpl[T]) Delete(ctx context.Context, scope rbac.ScopeDecision, id string) error {
	if scope.Kind == rbac.ScopeNone {
		return gorm.ErrRecordNotFound
	}

	query := s.db.WithContext(ctx).Model(s.modelType).Where("id = ? AND is_deleted = ?", id, false)
	query = s.applyScope(query, scope)

	if err := query.Update("deleted_at", time.Now()).Update("is_deleted", true).Error; err != nil {
		return err
	}

	events.Emit(fmt.Sprintf("%s.deleted", GormTableName(s.db, s.modelType)), id)

	return nil
}
