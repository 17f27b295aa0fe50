package service

import (
	"context"

	"workpackage-be/internal/dto"
	"workpackage-be/internal/pkg/requestctx"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
)

type IRootService interface {
	Load(ctx context.Context) (*dto.Root, error)
}

type rootService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRootService(uowFactory unitofwork.RepositoryFactory) IRootService {
	return &rootService{uowFactory: uowFactory}
}

// Load returns the caller's session context. User stays nil for anonymous
// callers and for tokens whose user no longer exists.
func (s *rootService) Load(ctx context.Context) (*dto.Root, error) {
	root := &dto.Root{}

	userId := requestctx.UserID(ctx)
	if userId == nil {
		return root, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return root, nil
	}

	root.User = &dto.UserSummary{
		Id:    user.Id,
		Login: user.Login,
		Name:  user.Name,
		Admin: user.Admin,
	}
	return root, nil
}
