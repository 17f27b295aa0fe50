package mapper

import (
	"workpackage-be/internal/entity"
	"workpackage-be/internal/model"
)

// LookupMapper maps the small reference tables (types, statuses, priorities).
type LookupMapper struct{}

func NewLookupMapper() *LookupMapper {
	return &LookupMapper{}
}

func (m *LookupMapper) TypeToEntity(t *model.Type) *entity.Type {
	if t == nil {
		return nil
	}
	return &entity.Type{
		Id:          t.Id,
		Name:        t.Name,
		Position:    t.Position,
		IsDefault:   t.IsDefault,
		IsMilestone: t.IsMilestone,
	}
}

func (m *LookupMapper) TypeToModel(t *entity.Type) *model.Type {
	if t == nil {
		return nil
	}
	return &model.Type{
		Id:          t.Id,
		Name:        t.Name,
		Position:    t.Position,
		IsDefault:   t.IsDefault,
		IsMilestone: t.IsMilestone,
	}
}

func (m *LookupMapper) TypesToEntities(types []*model.Type) []*entity.Type {
	entities := make([]*entity.Type, len(types))
	for i, t := range types {
		entities[i] = m.TypeToEntity(t)
	}
	return entities
}

func (m *LookupMapper) StatusToEntity(s *model.Status) *entity.Status {
	if s == nil {
		return nil
	}
	return &entity.Status{
		Id:        s.Id,
		Name:      s.Name,
		Position:  s.Position,
		IsDefault: s.IsDefault,
		IsClosed:  s.IsClosed,
	}
}

func (m *LookupMapper) StatusToModel(s *entity.Status) *model.Status {
	if s == nil {
		return nil
	}
	return &model.Status{
		Id:        s.Id,
		Name:      s.Name,
		Position:  s.Position,
		IsDefault: s.IsDefault,
		IsClosed:  s.IsClosed,
	}
}

func (m *LookupMapper) PriorityToEntity(p *model.Priority) *entity.Priority {
	if p == nil {
		return nil
	}
	return &entity.Priority{
		Id:        p.Id,
		Name:      p.Name,
		Position:  p.Position,
		IsDefault: p.IsDefault,
	}
}

func (m *LookupMapper) PriorityToModel(p *entity.Priority) *model.Priority {
	if p == nil {
		return nil
	}
	return &model.Priority{
		Id:        p.Id,
		Name:      p.Name,
		Position:  p.Position,
		IsDefault: p.IsDefault,
	}
}
