package unitofwork

import (
	"context"

	"workpackage-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkPackageRepository() contract.WorkPackageRepository
	ProjectRepository() contract.ProjectRepository
	UserRepository() contract.UserRepository
	TypeRepository() contract.TypeRepository
	StatusRepository() contract.StatusRepository
	PriorityRepository() contract.PriorityRepository
	QueryRepository() contract.QueryRepository
}
