// Package seed loads reference data and demo projects from a YAML file.
package seed

import (
	"context"
	"fmt"
	"os"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/repository/unitofwork"

	"gopkg.in/yaml.v3"
)

type File struct {
	Types      []Lookup  `yaml:"types"`
	Statuses   []Lookup  `yaml:"statuses"`
	Priorities []Lookup  `yaml:"priorities"`
	Users      []User    `yaml:"users"`
	Projects   []Project `yaml:"projects"`
}

type Lookup struct {
	Name      string `yaml:"name"`
	Default   bool   `yaml:"default"`
	Milestone bool   `yaml:"milestone"`
	Closed    bool   `yaml:"closed"`
}

type User struct {
	Login string `yaml:"login"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Admin bool   `yaml:"admin"`
}

type Project struct {
	Identifier string   `yaml:"identifier"`
	Name       string   `yaml:"name"`
	Types      []string `yaml:"types"`
	Members    []Member `yaml:"members"`
}

type Member struct {
	Login       string   `yaml:"login"`
	Permissions []string `yaml:"permissions"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse reads seed YAML and checks that projects only reference declared
// types and users.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	types := make(map[string]bool, len(f.Types))
	for _, t := range f.Types {
		types[t.Name] = true
	}
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		users[u.Login] = true
	}

	for _, p := range f.Projects {
		if p.Identifier == "" {
			return nil, fmt.Errorf("project %q has no identifier", p.Name)
		}
		for _, name := range p.Types {
			if !types[name] {
				return nil, fmt.Errorf("project %s: unknown type %q", p.Identifier, name)
			}
		}
		for _, m := range p.Members {
			if !users[m.Login] {
				return nil, fmt.Errorf("project %s: unknown user %q", p.Identifier, m.Login)
			}
		}
	}
	return &f, nil
}

// Apply writes the seed in one transaction. Positions follow file order.
func Apply(ctx context.Context, uowFactory unitofwork.RepositoryFactory, f *File) error {
	uow := uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	typeIds := make(map[string]int64, len(f.Types))
	for i, l := range f.Types {
		t := &entity.Type{Name: l.Name, Position: i + 1, IsDefault: l.Default, IsMilestone: l.Milestone}
		if err := uow.TypeRepository().Create(ctx, t); err != nil {
			return fmt.Errorf("type %s: %w", l.Name, err)
		}
		typeIds[l.Name] = t.Id
	}
	for i, l := range f.Statuses {
		s := &entity.Status{Name: l.Name, Position: i + 1, IsDefault: l.Default, IsClosed: l.Closed}
		if err := uow.StatusRepository().Create(ctx, s); err != nil {
			return fmt.Errorf("status %s: %w", l.Name, err)
		}
	}
	for i, l := range f.Priorities {
		p := &entity.Priority{Name: l.Name, Position: i + 1, IsDefault: l.Default}
		if err := uow.PriorityRepository().Create(ctx, p); err != nil {
			return fmt.Errorf("priority %s: %w", l.Name, err)
		}
	}

	users := make(map[string]*entity.User, len(f.Users))
	for _, u := range f.Users {
		user := &entity.User{
			Login:  u.Login,
			Name:   u.Name,
			Email:  u.Email,
			Admin:  u.Admin,
			Status: entity.UserStatusActive,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return fmt.Errorf("user %s: %w", u.Login, err)
		}
		users[u.Login] = user
	}

	for _, p := range f.Projects {
		project := &entity.Project{Identifier: p.Identifier, Name: p.Name, Active: true}
		for _, name := range p.Types {
			project.TypeIds = append(project.TypeIds, typeIds[name])
		}
		if err := uow.ProjectRepository().Create(ctx, project); err != nil {
			return fmt.Errorf("project %s: %w", p.Identifier, err)
		}
		for _, m := range p.Members {
			member := &entity.Member{
				ProjectId:   project.Id,
				UserId:      users[m.Login].Id,
				Permissions: m.Permissions,
			}
			if err := uow.ProjectRepository().AddMember(ctx, member); err != nil {
				return fmt.Errorf("member %s of %s: %w", m.Login, p.Identifier, err)
			}
		}
	}

	return uow.Commit()
}
