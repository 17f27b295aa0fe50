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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProjectMapper
}

func NewProjectRepository(db *gorm.DB) contract.ProjectRepository {
	return &ProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewProjectMapper(),
	}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entity.Project) error {
	m := r.mapper.ToModel(project)
	for _, id := range project.TypeIds {
		m.Types = append(m.Types, model.Type{Id: id})
	}
	// Types are reference rows; only the join table is written.
	if err := r.db.WithContext(ctx).Omit("Types.*").Create(m).Error; err != nil {
		return err
	}
	project.Id = m.Id
	project.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	var m model.Project
	query := r.db.WithContext(ctx).Scopes(scope.WithEnabledTypes)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProjectRepositoryImpl) AddMember(ctx context.Context, member *entity.Member) error {
	m := r.mapper.MemberToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *ProjectRepositoryImpl) FindMember(ctx context.Context, projectId, userId uuid.UUID) (*entity.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectId, userId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}
