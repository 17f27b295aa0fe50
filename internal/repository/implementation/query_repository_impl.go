package implementation

import (
	"context"
	"errors"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/mapper"
	"workpackage-be/internal/model"
	"workpackage-be/internal/repository/contract"
	"workpackage-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QueryMapper
}

func NewQueryRepository(db *gorm.DB) contract.QueryRepository {
	return &QueryRepositoryImpl{db: db, mapper: mapper.NewQueryMapper()}
}

func (r *QueryRepositoryImpl) Create(ctx context.Context, query *entity.Query) error {
	m := r.mapper.ToModel(query)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*query = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error) {
	var m model.Query
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
