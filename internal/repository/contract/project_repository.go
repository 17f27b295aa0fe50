package contract

import (
	"context"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error)
	AddMember(ctx context.Context, member *entity.Member) error
	FindMember(ctx context.Context, projectId, userId uuid.UUID) (*entity.Member, error)
}
