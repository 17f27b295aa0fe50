package contract

import (
	"context"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/repository/specification"
)

type WorkPackageRepository interface {
	Create(ctx context.Context, workPackage *entity.WorkPackage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkPackage, error)
}
