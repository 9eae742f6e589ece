package usecase_test

import (
	"context"
	"time"

	"go-interview-booking/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockStore hands out the mock repositories and runs WithTx callbacks inline
type MockStore struct {
	companies  *MockCompanyRepo
	positions  *MockPositionRepo
	interviews *MockInterviewRepo
	users      *MockUserRepo
}

func newMockStore() *MockStore {
	return &MockStore{
		companies:  new(MockCompanyRepo),
		positions:  new(MockPositionRepo),
		interviews: new(MockInterviewRepo),
		users:      new(MockUserRepo),
	}
}

func (m *MockStore) Companies() domain.CompanyRepository    { return m.companies }
func (m *MockStore) Positions() domain.PositionRepository   { return m.positions }
func (m *MockStore) Interviews() domain.InterviewRepository { return m.interviews }
func (m *MockStore) Users() domain.UserRepository           { return m.users }

func (m *MockStore) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return fn(m)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Fetch(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompanyRepo) DistinctTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPositionRepo struct {
	mock.Mock
}

func (m *MockPositionRepo) Create(ctx context.Context, position *domain.Position) error {
	return m.Called(ctx, position).Error(0)
}

func (m *MockPositionRepo) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Position), args.Error(1)
}

func (m *MockPositionRepo) Fetch(ctx context.Context, filter domain.PositionFilter) ([]domain.Position, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Position), args.Error(1)
}

func (m *MockPositionRepo) Update(ctx context.Context, position *domain.Position) error {
	return m.Called(ctx, position).Error(0)
}

func (m *MockPositionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPositionRepo) DeleteByCompany(ctx context.Context, companyID string) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPositionRepo) DistinctSkills(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id string) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) GetDetail(ctx context.Context, id string) (*domain.InterviewDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewDetail), args.Error(1)
}

func (m *MockInterviewRepo) FetchDetails(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewDetail), args.Error(1)
}

func (m *MockInterviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInterviewRepo) DeleteByPosition(ctx context.Context, positionID string) (int64, error) {
	args := m.Called(ctx, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterviewRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterviewRepo) CountByPosition(ctx context.Context, positionID string) (int64, error) {
	args := m.Called(ctx, positionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterviewRepo) CountOutsideWindow(ctx context.Context, positionID string, start, end time.Time) (int64, error) {
	args := m.Called(ctx, positionID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterviewRepo) ExistsByCompany(ctx context.Context, companyID string) (bool, error) {
	args := m.Called(ctx, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInterviewRepo) LockUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
