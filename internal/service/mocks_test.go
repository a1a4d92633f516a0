package service_test

import (
	"context"
	"time"

	"github.com/nurpe/busfleet/internal/model"
	"github.com/nurpe/busfleet/internal/repository"
	"github.com/nurpe/busfleet/internal/service"
)

type mockStore[T any] struct {
	GetFn    func(ctx context.Context, id uint) (*T, error)
	ListFn   func(ctx context.Context, scopes ...repository.Scope) ([]T, error)
	CreateFn func(ctx context.Context, item *T) error
	UpdateFn func(ctx context.Context, item *T) error
	DeleteFn func(ctx context.Context, id uint) error
}

var _ service.Store[model.Bus] = (*mockStore[model.Bus])(nil)

func (m *mockStore[T]) Get(ctx context.Context, id uint) (*T, error) {
	return m.GetFn(ctx, id)
}

func (m *mockStore[T]) List(ctx context.Context, scopes ...repository.Scope) ([]T, error) {
	return m.ListFn(ctx, scopes...)
}

func (m *mockStore[T]) Create(ctx context.Context, item *T) error {
	return m.CreateFn(ctx, item)
}

func (m *mockStore[T]) Update(ctx context.Context, item *T) error {
	return m.UpdateFn(ctx, item)
}

func (m *mockStore[T]) Delete(ctx context.Context, id uint) error {
	return m.DeleteFn(ctx, id)
}

// refSet is a ReferenceChecker backed by a fixed set of ids.
type refSet map[uint]bool

func (r refSet) Exists(_ context.Context, id uint) (bool, error) {
	return r[id], nil
}

type mockAccounts struct {
	CreateAdminFn     func(ctx context.Context, admin *model.Admin) error
	CreateUserFn      func(ctx context.Context, user *model.User) error
	FindAdminFn       func(ctx context.Context, login string) (*model.Admin, error)
	FindUserByEmailFn func(ctx context.Context, email string) (*model.User, error)
	GetAdminFn        func(ctx context.Context, id uint) (*model.Admin, error)
	GetUserFn         func(ctx context.Context, id uint) (*model.User, error)
}

var _ service.AccountStore = (*mockAccounts)(nil)

func (m *mockAccounts) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return m.CreateAdminFn(ctx, admin)
}

func (m *mockAccounts) CreateUser(ctx context.Context, user *model.User) error {
	return m.CreateUserFn(ctx, user)
}

func (m *mockAccounts) FindAdmin(ctx context.Context, login string) (*model.Admin, error) {
	return m.FindAdminFn(ctx, login)
}

func (m *mockAccounts) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.FindUserByEmailFn(ctx, email)
}

func (m *mockAccounts) GetAdmin(ctx context.Context, id uint) (*model.Admin, error) {
	return m.GetAdminFn(ctx, id)
}

func (m *mockAccounts) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return m.GetUserFn(ctx, id)
}

// plainHasher stores passwords with a visible prefix so tests can assert on it.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return service.ErrUnauthorized
	}
	return nil
}

type fixedIssuer struct{}

func (fixedIssuer) Issue(p model.Principal) (string, time.Time, error) {
	return "token-" + string(p.Role), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

type mockReportSource struct {
	ListBusesFn      func(ctx context.Context) ([]model.Bus, error)
	ListDriversFn    func(ctx context.Context) ([]model.Driver, error)
	ListShiftsFn     func(ctx context.Context, within *model.DateRange) ([]model.Shift, error)
	ListComplaintsFn func(ctx context.Context, within *model.DateRange) ([]model.Complaint, error)
	ListAccidentsFn  func(ctx context.Context, within *model.DateRange) ([]model.AccidentReport, error)
}

var _ service.ReportSource = (*mockReportSource)(nil)

func (m *mockReportSource) ListBuses(ctx context.Context) ([]model.Bus, error) {
	if m.ListBusesFn == nil {
		return nil, nil
	}
	return m.ListBusesFn(ctx)
}

func (m *mockReportSource) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	if m.ListDriversFn == nil {
		return nil, nil
	}
	return m.ListDriversFn(ctx)
}

func (m *mockReportSource) ListShifts(ctx context.Context, within *model.DateRange) ([]model.Shift, error) {
	if m.ListShiftsFn == nil {
		return nil, nil
	}
	return m.ListShiftsFn(ctx, within)
}

func (m *mockReportSource) ListComplaints(ctx context.Context, within *model.DateRange) ([]model.Complaint, error) {
	if m.ListComplaintsFn == nil {
		return nil, nil
	}
	return m.ListComplaintsFn(ctx, within)
}

func (m *mockReportSource) ListAccidents(ctx context.Context, within *model.DateRange) ([]model.AccidentReport, error) {
	if m.ListAccidentsFn == nil {
		return nil, nil
	}
	return m.ListAccidentsFn(ctx, within)
}

type generatorFunc func(bundle model.ReportBundle) ([]byte, error)

func (f generatorFunc) Generate(bundle model.ReportBundle) ([]byte, error) { return f(bundle) }
