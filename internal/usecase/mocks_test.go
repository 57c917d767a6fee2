package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/unipile"
	"github.com/xavierca1/ligue-outreach/internal/infra/mail"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) InsertBatch(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepo) FindByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepo) UpdateStatus(ctx context.Context, userID, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, userID, id, status)
	return args.Error(0)
}

func (m *MockLeadRepo) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockLeadRepo) CampaignStats(ctx context.Context, userID string) ([]entity.CampaignStat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CampaignStat), args.Error(1)
}

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Exists(ctx context.Context, clientID, accountID string, status entity.AccountStatus) (bool, error) {
	args := m.Called(ctx, clientID, accountID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) FindLatest(ctx context.Context, clientID, accountID string) (*entity.LinkedInAccountStatus, error) {
	args := m.Called(ctx, clientID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LinkedInAccountStatus), args.Error(1)
}

func (m *MockAccountRepo) Insert(ctx context.Context, row *entity.LinkedInAccountStatus) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockAccountRepo) UpdateStatus(ctx context.Context, id int64, status entity.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAccountRepo) ListCurrent(ctx context.Context, clientID string) ([]*entity.LinkedInAccountStatus, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LinkedInAccountStatus), args.Error(1)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) FindByUserID(ctx context.Context, userID string) (*entity.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingsRepo) UpsertLinkedInAccount(ctx context.Context, userID, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) ListAccounts(ctx context.Context) ([]unipile.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]unipile.Account), args.Error(1)
}

func (m *MockBroker) GetAccount(ctx context.Context, id string) (*unipile.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*unipile.Account), args.Error(1)
}

func (m *MockBroker) CreateHostedLink(ctx context.Context, input unipile.HostedLinkInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, trigger queue.WorkflowTrigger) error {
	args := m.Called(ctx, trigger)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCampaign(to, subject, tmpl string, data mail.CampaignEmailData) error {
	args := m.Called(to, subject, tmpl, data)
	return args.Error(0)
}
