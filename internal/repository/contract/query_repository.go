package contract

import (
	"context"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/repository/specification"
)

type QueryRepository interface {
	Create(ctx context.Context, query *entity.Query) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error)
}
