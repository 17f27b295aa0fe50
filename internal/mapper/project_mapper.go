package mapper

import (
	"workpackage-be/internal/entity"
	"workpackage-be/internal/model"

	"gorm.io/datatypes"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}
	typeIds := make([]int64, 0, len(p.Types))
	for _, t := range p.Types {
		typeIds = append(typeIds, t.Id)
	}
	return &entity.Project{
		Id:         p.Id,
		Identifier: p.Identifier,
		Name:       p.Name,
		Active:     p.Active,
		TypeIds:    typeIds,
		CreatedAt:  p.CreatedAt,
	}
}

// ToModel does not carry the enabled types; associations are written
// separately by the repository.
func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		Id:         p.Id,
		Identifier: p.Identifier,
		Name:       p.Name,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *ProjectMapper) MemberToEntity(mb *model.Member) *entity.Member {
	if mb == nil {
		return nil
	}
	return &entity.Member{
		Id:          mb.Id,
		ProjectId:   mb.ProjectId,
		UserId:      mb.UserId,
		Permissions: []string(mb.Permissions),
		CreatedAt:   mb.CreatedAt,
	}
}

func (m *ProjectMapper) MemberToModel(mb *entity.Member) *model.Member {
	if mb == nil {
		return nil
	}
	return &model.Member{
		Id:          mb.Id,
		ProjectId:   mb.ProjectId,
		UserId:      mb.UserId,
		Permissions: datatypes.JSONSlice[string](mb.Permissions),
		CreatedAt:   mb.CreatedAt,
	}
}
