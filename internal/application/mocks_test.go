package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/internal/domain/repository"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

var errMockNoRecord = errors.New("record not found")

// mockUserRepo is an in-memory UserRepository mirroring the SQL-backed
// behavior: password hidden on read paths, empty password preserved on update.
type mockUserRepo struct {
	users []entity.User
}

func (m *mockUserRepo) find(id string) int {
	for i := range m.users {
		if m.users[i].ID == id {
			return i
		}
	}
	return -1
}

func publicUser(u entity.User) *entity.User {
	cp := u
	cp.Password = ""
	if cp.Addresses == nil {
		cp.Addresses = []entity.Address{}
	}
	return &cp
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if i := m.find(id); i >= 0 {
		return publicUser(m.users[i]), nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return publicUser(m.users[i]), nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetWithPassword(_ context.Context, email string) (*entity.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			cp := m.users[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetAll(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(m.users))
	for i := range m.users {
		out = append(out, *publicUser(m.users[i]))
	}
	return out, nil
}

func (m *mockUserRepo) Paginate(ctx context.Context, opts pagination.Options) ([]entity.User, pagination.Meta, error) {
	all, _ := m.GetAll(ctx)
	return pageSlice(all, opts)
}

func (m *mockUserRepo) Search(_ context.Context, q string, opts pagination.Options) ([]entity.User, pagination.Meta, error) {
	q = strings.ToLower(q)
	matched := make([]entity.User, 0)
	for i := range m.users {
		u := m.users[i]
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.PhoneNumber), q) {
			matched = append(matched, *publicUser(u))
		}
	}
	return pageSlice(matched, opts)
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.users = append(m.users, cp)
	return publicUser(cp), nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) (*entity.User, error) {
	i := m.find(u.ID)
	if i < 0 {
		return nil, errMockNoRecord
	}
	cp := *u
	if cp.Password == "" {
		cp.Password = m.users[i].Password
	}
	cp.CreatedAt = m.users[i].CreatedAt
	cp.UpdatedAt = time.Now()
	m.users[i] = cp
	return publicUser(cp), nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	i := m.find(id)
	if i < 0 {
		return errMockNoRecord
	}
	m.users = append(m.users[:i], m.users[i+1:]...)
	return nil
}

// mockAddressRepo is an in-memory AddressRepository that keeps the
// one-default-per-user invariant the way the transactional SQL version does.
type mockAddressRepo struct {
	addresses []entity.Address
}

func (m *mockAddressRepo) find(id string) int {
	for i := range m.addresses {
		if m.addresses[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *mockAddressRepo) GetByID(_ context.Context, id string) (*entity.Address, error) {
	if i := m.find(id); i >= 0 {
		cp := m.addresses[i]
		return &cp, nil
	}
	return nil, nil
}

func (m *mockAddressRepo) GetAll(_ context.Context) ([]entity.Address, error) {
	return append([]entity.Address(nil), m.addresses...), nil
}

func (m *mockAddressRepo) GetAllByUser(_ context.Context, userID string) ([]entity.Address, error) {
	out := make([]entity.Address, 0)
	for _, a := range m.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAddressRepo) Paginate(ctx context.Context, userID string, opts pagination.Options) ([]entity.Address, pagination.Meta, error) {
	var (
		all []entity.Address
		err error
	)
	if userID != "" {
		all, err = m.GetAllByUser(ctx, userID)
	} else {
		all, err = m.GetAll(ctx)
	}
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return pageSlice(all, opts)
}

func (m *mockAddressRepo) clearDefaults(userID, exceptID string) {
	for i := range m.addresses {
		if m.addresses[i].UserID == userID && m.addresses[i].ID != exceptID {
			m.addresses[i].IsDefault = false
		}
	}
}

func (m *mockAddressRepo) Create(_ context.Context, a *entity.Address) (*entity.Address, error) {
	cp := *a
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	if cp.IsDefault {
		m.clearDefaults(cp.UserID, "")
	}
	m.addresses = append(m.addresses, cp)
	return &cp, nil
}

func (m *mockAddressRepo) Update(_ context.Context, a *entity.Address) (*entity.Address, error) {
	i := m.find(a.ID)
	if i < 0 {
		return nil, errMockNoRecord
	}
	cp := *a
	cp.CreatedAt = m.addresses[i].CreatedAt
	cp.UpdatedAt = time.Now()
	if cp.IsDefault {
		m.clearDefaults(cp.UserID, cp.ID)
	}
	m.addresses[i] = cp
	return &cp, nil
}

func (m *mockAddressRepo) Delete(_ context.Context, id string) error {
	i := m.find(id)
	if i < 0 {
		return errMockNoRecord
	}
	m.addresses = append(m.addresses[:i], m.addresses[i+1:]...)
	return nil
}

func (m *mockAddressRepo) SetDefault(_ context.Context, id string) (*entity.Address, error) {
	i := m.find(id)
	if i < 0 {
		return nil, errMockNoRecord
	}
	m.clearDefaults(m.addresses[i].UserID, id)
	m.addresses[i].IsDefault = true
	m.addresses[i].UpdatedAt = time.Now()
	cp := m.addresses[i]
	return &cp, nil
}

func pageSlice[T any](all []T, opts pagination.Options) ([]T, pagination.Meta, error) {
	n := opts.Normalize()
	start := n.Offset()
	end := start + n.Limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], pagination.NewMeta(len(all), opts), nil
}

var (
	_ repository.UserRepository    = (*mockUserRepo)(nil)
	_ repository.AddressRepository = (*mockAddressRepo)(nil)
)
