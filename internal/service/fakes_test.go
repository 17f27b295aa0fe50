package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"workpackage-be/internal/entity"
	"workpackage-be/internal/model"
	"workpackage-be/internal/repository/contract"
	"workpackage-be/internal/repository/specification"
	"workpackage-be/internal/repository/unitofwork"
	"workpackage-be/pkg/events"

	"github.com/google/uuid"
)

// memoryDB backs the fake unit of work. Specifications are interpreted by
// type, the way the gorm implementations translate them to SQL.
type memoryDB struct {
	mu           sync.Mutex
	projects     []*entity.Project
	members      []*entity.Member
	users        []*entity.User
	types        []*entity.Type
	statuses     []*entity.Status
	priorities   []*entity.Priority
	queries      []*entity.Query
	workPackages []*entity.WorkPackage
	commits      int
}

func (db *memoryDB) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{db: db}
}

type fakeUnitOfWork struct {
	db      *memoryDB
	inTx    bool
	pending []*entity.WorkPackage
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.db.mu.Lock()
	defer u.db.mu.Unlock()
	u.db.workPackages = append(u.db.workPackages, u.pending...)
	u.db.commits++
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.pending = nil
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) WorkPackageRepository() contract.WorkPackageRepository {
	return &fakeWorkPackageRepo{uow: u}
}
func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository {
	return &fakeProjectRepo{db: u.db}
}
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{db: u.db}
}
func (u *fakeUnitOfWork) TypeRepository() contract.TypeRepository {
	return &fakeTypeRepo{db: u.db}
}
func (u *fakeUnitOfWork) StatusRepository() contract.StatusRepository {
	return &fakeStatusRepo{db: u.db}
}
func (u *fakeUnitOfWork) PriorityRepository() contract.PriorityRepository {
	return &fakePriorityRepo{db: u.db}
}
func (u *fakeUnitOfWork) QueryRepository() contract.QueryRepository {
	return &fakeQueryRepo{db: u.db}
}

// criteria collects what the specifications asked for.
type criteria struct {
	id         *uuid.UUID
	numericID  *int64
	identifier *string
	projectID  *uuid.UUID
	activeOnly bool
	isDefault  bool
	visibleTo  *specification.VisibleTo
}

func collect(specs []specification.Specification) criteria {
	var c criteria
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			c.id = &id
		case specification.ByNumericID:
			id := s.ID
			c.numericID = &id
		case specification.ByIdentifier:
			identifier := s.Identifier
			c.identifier = &identifier
		case specification.ByProjectID:
			id := s.ProjectID
			c.projectID = &id
		case specification.ActiveOnly:
			c.activeOnly = true
		case specification.IsDefault:
			c.isDefault = true
		case specification.VisibleTo:
			v := s
			c.visibleTo = &v
		}
	}
	return c
}

type fakeWorkPackageRepo struct{ uow *fakeUnitOfWork }

func (r *fakeWorkPackageRepo) Create(ctx context.Context, wp *entity.WorkPackage) error {
	wp.Id = uuid.New()
	wp.CreatedAt = time.Now()
	if r.uow.inTx {
		r.uow.pending = append(r.uow.pending, wp)
		return nil
	}
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()
	r.uow.db.workPackages = append(r.uow.db.workPackages, wp)
	return nil
}

func (r *fakeWorkPackageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkPackage, error) {
	c := collect(specs)
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()
	for _, wp := range r.uow.db.workPackages {
		if c.id != nil && wp.Id != *c.id {
			continue
		}
		if c.projectID != nil && wp.ProjectId != *c.projectID {
			continue
		}
		return wp, nil
	}
	return nil, nil
}

type fakeProjectRepo struct{ db *memoryDB }

func (r *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	r.db.projects = append(r.db.projects, p)
	return nil
}

func (r *fakeProjectRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Project, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.projects {
		if c.id != nil && p.Id != *c.id {
			continue
		}
		if c.identifier != nil && p.Identifier != *c.identifier {
			continue
		}
		if c.activeOnly && !p.Active {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (r *fakeProjectRepo) AddMember(ctx context.Context, m *entity.Member) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.members = append(r.db.members, m)
	return nil
}

func (r *fakeProjectRepo) FindMember(ctx context.Context, projectId, userId uuid.UUID) (*entity.Member, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.members {
		if m.ProjectId == projectId && m.UserId == userId {
			return m, nil
		}
	}
	return nil, nil
}

type fakeUserRepo struct{ db *memoryDB }

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	r.db.users = append(r.db.users, u)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if c.id != nil && u.Id != *c.id {
			continue
		}
		return u, nil
	}
	return nil, nil
}

type fakeTypeRepo struct{ db *memoryDB }

func (r *fakeTypeRepo) Create(ctx context.Context, t *entity.Type) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.types = append(r.db.types, t)
	return nil
}

func (r *fakeTypeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Type, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeTypeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Type, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Type
	for _, t := range r.db.types {
		if c.numericID != nil && t.Id != *c.numericID {
			continue
		}
		if c.isDefault && !t.IsDefault {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeStatusRepo struct{ db *memoryDB }

func (r *fakeStatusRepo) Create(ctx context.Context, s *entity.Status) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.statuses = append(r.db.statuses, s)
	return nil
}

func (r *fakeStatusRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Status, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.statuses {
		if c.numericID != nil && s.Id != *c.numericID {
			continue
		}
		if c.isDefault && !s.IsDefault {
			continue
		}
		return s, nil
	}
	return nil, nil
}

type fakePriorityRepo struct{ db *memoryDB }

func (r *fakePriorityRepo) Create(ctx context.Context, p *entity.Priority) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.priorities = append(r.db.priorities, p)
	return nil
}

func (r *fakePriorityRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Priority, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.priorities {
		if c.numericID != nil && p.Id != *c.numericID {
			continue
		}
		if c.isDefault && !p.IsDefault {
			continue
		}
		return p, nil
	}
	return nil, nil
}

type fakeQueryRepo struct{ db *memoryDB }

func (r *fakeQueryRepo) Create(ctx context.Context, q *entity.Query) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if q.Id == uuid.Nil {
		q.Id = uuid.New()
	}
	r.db.queries = append(r.db.queries, q)
	return nil
}

func (r *fakeQueryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error) {
	c := collect(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, q := range r.db.queries {
		if c.id != nil && q.Id != *c.id {
			continue
		}
		if c.visibleTo != nil && !q.Public && (c.visibleTo.UserID == nil || *c.visibleTo.UserID != q.UserId) {
			continue
		}
		return q, nil
	}
	return nil, nil
}

// fixture is a project "demo" with types Task (default), Bug and Milestone,
// of which Milestone is not enabled.
type fixture struct {
	db        *memoryDB
	project   *entity.Project
	member    *entity.User
	outsider  *entity.User
	admin     *entity.User
	task      *entity.Type
	bug       *entity.Type
	milestone *entity.Type
}

func newFixture() *fixture {
	db := &memoryDB{}
	f := &fixture{db: db}

	f.task = &entity.Type{Id: 1, Name: "Task", Position: 1, IsDefault: true}
	f.bug = &entity.Type{Id: 2, Name: "Bug", Position: 2}
	f.milestone = &entity.Type{Id: 3, Name: "Milestone", Position: 3, IsMilestone: true}
	db.types = []*entity.Type{f.task, f.bug, f.milestone}
	db.statuses = []*entity.Status{{Id: 1, Name: "New", IsDefault: true}, {Id: 2, Name: "In progress"}}
	db.priorities = []*entity.Priority{{Id: 1, Name: "Low"}, {Id: 2, Name: "Normal", IsDefault: true}}

	f.project = &entity.Project{Id: uuid.New(), Identifier: "demo", Name: "Demo", Active: true, TypeIds: []int64{1, 2}}
	db.projects = []*entity.Project{
		f.project,
		{Id: uuid.New(), Identifier: "archived", Name: "Archived", Active: false, TypeIds: []int64{1}},
	}

	f.member = &entity.User{Id: uuid.New(), Login: "alice", Status: entity.UserStatusActive}
	f.outsider = &entity.User{Id: uuid.New(), Login: "mallory", Status: entity.UserStatusActive}
	f.admin = &entity.User{Id: uuid.New(), Login: "admin", Admin: true, Status: entity.UserStatusActive}
	db.users = []*entity.User{f.member, f.outsider, f.admin}

	db.members = []*entity.Member{
		{Id: uuid.New(), ProjectId: f.project.Id, UserId: f.member.Id, Permissions: []string{entity.PermissionViewWorkPackages, entity.PermissionAddWorkPackages}},
		{Id: uuid.New(), ProjectId: f.project.Id, UserId: f.outsider.Id, Permissions: []string{entity.PermissionViewWorkPackages}},
	}
	return f
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

type recordingPayloads struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPayloads) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

type memoryNotifications struct {
	mu    sync.Mutex
	saved []model.Notification
}

func (r *memoryNotifications) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, *n)
	return nil
}

func (r *memoryNotifications) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.saved {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryNotifications) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, _, _ := r.GetNotificationsByUserID(ctx, userID, 0, 0)
	var n int64
	for _, item := range list {
		if !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *memoryNotifications) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.saved {
		if r.saved[i].ID == notificationID && r.saved[i].UserID == userID {
			r.saved[i].IsRead = true
		}
	}
	return nil
}

func (r *memoryNotifications) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.saved {
		if r.saved[i].UserID == userID {
			r.saved[i].IsRead = true
		}
	}
	return nil
}

type recordingDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]model.Notification
}

func (d *recordingDelivery) Send(userID uuid.UUID, n model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = make(map[uuid.UUID][]model.Notification)
	}
	d.sent[userID] = append(d.sent[userID], n)
}
