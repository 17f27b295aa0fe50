package implementation

import (
	"context"
	"errors"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/mapper"
	"workpackage-be/internal/model"
	"workpackage-be/internal/repository/contract"
	"workpackage-be/internal/repository/scope"
	"workpackage-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type TypeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LookupMapper
}

func NewTypeRepository(db *gorm.DB) contract.TypeRepository {
	return &TypeRepositoryImpl{db: db, mapper: mapper.NewLookupMapper()}
}

func (r *TypeRepositoryImpl) Create(ctx context.Context, t *entity.Type) error {
	m := r.mapper.TypeToModel(t)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*t = *r.mapper.TypeToEntity(m)
	return nil
}

func (r *TypeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Type, error) {
	var m model.Type
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByPosition), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TypeToEntity(&m), nil
}

func (r *TypeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Type, error) {
	var models []*model.Type
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByPosition), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TypesToEntities(models), nil
}

type StatusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LookupMapper
}

func NewStatusRepository(db *gorm.DB) contract.StatusRepository {
	return &StatusRepositoryImpl{db: db, mapper: mapper.NewLookupMapper()}
}

func (r *StatusRepositoryImpl) Create(ctx context.Context, s *entity.Status) error {
	m := r.mapper.StatusToModel(s)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*s = *r.mapper.StatusToEntity(m)
	return nil
}

func (r *StatusRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Status, error) {
	var m model.Status
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByPosition), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StatusToEntity(&m), nil
}

type PriorityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LookupMapper
}

func NewPriorityRepository(db *gorm.DB) contract.PriorityRepository {
	return &PriorityRepositoryImpl{db: db, mapper: mapper.NewLookupMapper()}
}

func (r *PriorityRepositoryImpl) Create(ctx context.Context, p *entity.Priority) error {
	m := r.mapper.PriorityToModel(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*p = *r.mapper.PriorityToEntity(m)
	return nil
}

func (r *PriorityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Priority, error) {
	var m model.Priority
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByPosition), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PriorityToEntity(&m), nil
}
