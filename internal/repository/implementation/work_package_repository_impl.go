package implementation

import (
	"context"
	"errors"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/mapper"
	"workpackage-be/internal/model"
	"workpackage-be/internal/repository/contract"
	"workpackage-be/internal/repository/specification"

	"gorm.io/gorm"
)

type WorkPackageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkPackageMapper
}

func NewWorkPackageRepository(db *gorm.DB) contract.WorkPackageRepository {
	return &WorkPackageRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkPackageMapper(),
	}
}

func (r *WorkPackageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkPackageRepositoryImpl) Create(ctx context.Context, workPackage *entity.WorkPackage) error {
	m := r.mapper.ToModel(workPackage)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*workPackage = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkPackageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkPackage, error) {
	var m model.WorkPackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
