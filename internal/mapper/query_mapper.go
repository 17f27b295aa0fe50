package mapper

import (
	"workpackage-be/internal/entity"
	"workpackage-be/internal/model"

	"gorm.io/datatypes"
)

type QueryMapper struct{}

func NewQueryMapper() *QueryMapper {
	return &QueryMapper{}
}

func (m *QueryMapper) ToEntity(q *model.Query) *entity.Query {
	if q == nil {
		return nil
	}
	return &entity.Query{
		Id:        q.Id,
		ProjectId: q.ProjectId,
		UserId:    q.UserId,
		Name:      q.Name,
		Public:    q.Public,
		Filters:   []byte(q.Filters),
		CreatedAt: q.CreatedAt,
	}
}

func (m *QueryMapper) ToModel(q *entity.Query) *model.Query {
	if q == nil {
		return nil
	}
	return &model.Query{
		Id:        q.Id,
		ProjectId: q.ProjectId,
		UserId:    q.UserId,
		Name:      q.Name,
		Public:    q.Public,
		Filters:   datatypes.JSON(q.Filters),
		CreatedAt: q.CreatedAt,
	}
}
