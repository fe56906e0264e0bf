package testutil

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authgate/internal/model"
)

// MemoryDB is an in-memory entity store for tests. Its views implement the
// model store interfaces over shared state.
type MemoryDB struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	roles     map[uuid.UUID]model.Role
	userRoles map[uuid.UUID]map[uuid.UUID]struct{}
	history   []model.LoginHistoryRecord
	networks  map[uuid.UUID]map[string]struct{}
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:     make(map[uuid.UUID]model.User),
		roles:     make(map[uuid.UUID]model.Role),
		userRoles: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		networks:  make(map[uuid.UUID]map[string]struct{}),
	}
}

func (db *MemoryDB) Users() *MemoryUsers         { return &MemoryUsers{db: db} }
func (db *MemoryDB) Roles() *MemoryRoles         { return &MemoryRoles{db: db} }
func (db *MemoryDB) UserRoles() *MemoryUserRoles { return &MemoryUserRoles{db: db} }
func (db *MemoryDB) History() *MemoryHistory     { return &MemoryHistory{db: db} }
func (db *MemoryDB) Networks() *MemoryNetworks   { return &MemoryNetworks{db: db} }

func (db *MemoryDB) withRoles(user model.User) model.UserWithRoles {
	roles := []model.Role{}
	for roleID := range db.userRoles[user.ID] {
		roles = append(roles, db.roles[roleID])
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Service != roles[j].Service {
			return roles[i].Service < roles[j].Service
		}
		return roles[i].Name < roles[j].Name
	})
	return model.UserWithRoles{User: user, Roles: roles}
}

func paginate[T any](items []T, page model.Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return slices.Clone(items[page.Offset:end])
}

var _ model.UserStore = (*MemoryUsers)(nil)

type MemoryUsers struct{ db *MemoryDB }

func (s *MemoryUsers) Create(_ context.Context, user model.User) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.users {
		if existing.Login == user.Login {
			return model.User{}, model.ErrDuplicate
		}
	}
	s.db.users[user.ID] = user
	return user, nil
}

func (s *MemoryUsers) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *MemoryUsers) GetByLogin(_ context.Context, login string) (model.UserWithRoles, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, user := range s.db.users {
		if user.Login == login {
			return s.db.withRoles(user), nil
		}
	}
	return model.UserWithRoles{}, model.ErrNotFound
}

func (s *MemoryUsers) GetWithRoles(_ context.Context, id uuid.UUID) (model.UserWithRoles, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return model.UserWithRoles{}, model.ErrNotFound
	}
	return s.db.withRoles(user), nil
}

func (s *MemoryUsers) List(_ context.Context, page model.Page) ([]model.UserWithRoles, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users := make([]model.UserWithRoles, 0, len(s.db.users))
	for _, user := range s.db.users {
		users = append(users, s.db.withRoles(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Login < users[j].Login })
	return paginate(users, page), nil
}

func (s *MemoryUsers) UpdateByID(_ context.Context, id uuid.UUID, patch model.UserPatch) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if patch.Login != nil {
		for otherID, other := range s.db.users {
			if otherID != id && other.Login == *patch.Login {
				return model.User{}, model.ErrDuplicate
			}
		}
		user.Login = *patch.Login
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	s.db.users[id] = user
	return user, nil
}

func (s *MemoryUsers) RemoveByID(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.db.users, id)
	delete(s.db.userRoles, id)
	delete(s.db.networks, id)
	return nil
}

func (s *MemoryUsers) GetRefreshToken(_ context.Context, id uuid.UUID) (*string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if user.RefreshToken == nil {
		return nil, nil
	}
	token := *user.RefreshToken
	return &token, nil
}

func (s *MemoryUsers) UpdateRefreshToken(_ context.Context, id uuid.UUID, token *string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return model.ErrNotFound
	}
	if token == nil {
		user.RefreshToken = nil
	} else {
		stored := *token
		user.RefreshToken = &stored
	}
	s.db.users[id] = user
	return nil
}

var _ model.RoleStore = (*MemoryRoles)(nil)

type MemoryRoles struct{ db *MemoryDB }

func (s *MemoryRoles) Create(_ context.Context, role model.Role) (model.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.roles {
		if existing.Name == role.Name && existing.Service == role.Service {
			return model.Role{}, model.ErrDuplicate
		}
	}
	s.db.roles[role.ID] = role
	return role, nil
}

func (s *MemoryRoles) GetByID(_ context.Context, id uuid.UUID) (model.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	role, ok := s.db.roles[id]
	if !ok {
		return model.Role{}, model.ErrNotFound
	}
	return role, nil
}

func (s *MemoryRoles) GetByNameAndService(_ context.Context, name, service string) (model.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, role := range s.db.roles {
		if role.Name == name && role.Service == service {
			return role, nil
		}
	}
	return model.Role{}, model.ErrNotFound
}

func (s *MemoryRoles) List(_ context.Context, page model.Page) ([]model.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	roles := make([]model.Role, 0, len(s.db.roles))
	for _, role := range s.db.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Service != roles[j].Service {
			return roles[i].Service < roles[j].Service
		}
		return roles[i].Name < roles[j].Name
	})
	return paginate(roles, page), nil
}

func (s *MemoryRoles) UpdateByID(_ context.Context, id uuid.UUID, patch model.RolePatch) (model.Role, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	role, ok := s.db.roles[id]
	if !ok {
		return model.Role{}, model.ErrNotFound
	}
	if patch.Name != nil {
		role.Name = *patch.Name
	}
	if patch.Service != nil {
		role.Service = *patch.Service
	}
	for otherID, other := range s.db.roles {
		if otherID != id && other.Name == role.Name && other.Service == role.Service {
			return model.Role{}, model.ErrDuplicate
		}
	}
	s.db.roles[id] = role
	return role, nil
}

func (s *MemoryRoles) RemoveByID(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.roles[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.db.roles, id)
	for _, assigned := range s.db.userRoles {
		delete(assigned, id)
	}
	return nil
}

var _ model.UserRoleStore = (*MemoryUserRoles)(nil)

type MemoryUserRoles struct{ db *MemoryDB }

func (s *MemoryUserRoles) Attach(_ context.Context, userID, roleID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[userID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := s.db.roles[roleID]; !ok {
		return model.ErrNotFound
	}
	assigned, ok := s.db.userRoles[userID]
	if !ok {
		assigned = make(map[uuid.UUID]struct{})
		s.db.userRoles[userID] = assigned
	}
	if _, ok := assigned[roleID]; ok {
		return model.ErrAlreadyAssigned
	}
	assigned[roleID] = struct{}{}
	return nil
}

func (s *MemoryUserRoles) Detach(_ context.Context, userID, roleID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.userRoles[userID][roleID]; !ok {
		return model.ErrNotAssigned
	}
	delete(s.db.userRoles[userID], roleID)
	return nil
}

var _ model.LoginHistoryStore = (*MemoryHistory)(nil)

type MemoryHistory struct{ db *MemoryDB }

func (s *MemoryHistory) Append(_ context.Context, userID uuid.UUID, at time.Time) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.history = append(s.db.history, model.LoginHistoryRecord{ID: uuid.New(), UserID: userID, LoginAt: at})
	return nil
}

func (s *MemoryHistory) ListByUser(_ context.Context, userID uuid.UUID, page model.Page) ([]model.LoginHistoryRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var records []model.LoginHistoryRecord
	for i := len(s.db.history) - 1; i >= 0; i-- {
		if s.db.history[i].UserID == userID {
			records = append(records, s.db.history[i])
		}
	}
	return paginate(records, page), nil
}

var _ model.NetworkStore = (*MemoryNetworks)(nil)

type MemoryNetworks struct{ db *MemoryDB }

func (s *MemoryNetworks) Exists(_ context.Context, userID uuid.UUID, network string) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, ok := s.db.networks[userID][network]
	return ok, nil
}

func (s *MemoryNetworks) Create(_ context.Context, link model.ExternalLink) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	links, ok := s.db.networks[link.UserID]
	if !ok {
		links = make(map[string]struct{})
		s.db.networks[link.UserID] = links
	}
	links[link.Network] = struct{}{}
	return nil
}
