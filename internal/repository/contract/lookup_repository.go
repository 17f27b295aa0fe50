package contract

import (
	"context"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/repository/specification"
)

type TypeRepository interface {
	Create(ctx context.Context, t *entity.Type) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Type, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Type, error)
}

type StatusRepository interface {
	Create(ctx context.Context, s *entity.Status) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Status, error)
}

type PriorityRepository interface {
	Create(ctx context.Context, p *entity.Priority) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Priority, error)
}
