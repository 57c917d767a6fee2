package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/integration/unipile"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: map[string]*entity.Lead{}}
}

func (f *fakeLeadRepo) InsertBatch(ctx context.Context, leads []*entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range leads {
		f.leads[l.ID] = l
	}
	return nil
}

func (f *fakeLeadRepo) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Lead
	for _, l := range f.leads {
		if l.UserID == filter.UserID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeadRepo) FindByID(ctx context.Context, userID, id string) (*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leads[id]
	if !ok || l.UserID != userID {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[lead.ID] = lead
	return nil
}

func (f *fakeLeadRepo) UpdateStatus(ctx context.Context, userID, id string, status entity.LeadStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leads[id]
	if !ok {
		return entity.ErrLeadNotFound
	}
	l.Status = status
	return nil
}

func (f *fakeLeadRepo) Delete(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.leads[id]; !ok {
		return entity.ErrLeadNotFound
	}
	delete(f.leads, id)
	return nil
}

func (f *fakeLeadRepo) CampaignStats(ctx context.Context, userID string) ([]entity.CampaignStat, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[string]*entity.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]*entity.Settings{}}
}

func (f *fakeSettingsRepo) FindByUserID(ctx context.Context, userID string) (*entity.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.settings[userID]
	if !ok {
		return nil, entity.ErrSettingsNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s *entity.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.settings[s.UserID]
	if !ok {
		cur = &entity.Settings{UserID: s.UserID}
		f.settings[s.UserID] = cur
	}
	cur.WebhookURL = s.WebhookURL
	cur.LinkedInWebhookURL = s.LinkedInWebhookURL
	cur.EmailTemplate = s.EmailTemplate
	cur.UpdatedAt = time.Now()
	return nil
}

func (f *fakeSettingsRepo) UpsertLinkedInAccount(ctx context.Context, userID, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.settings[userID]
	if !ok {
		cur = &entity.Settings{UserID: userID}
		f.settings[userID] = cur
	}
	cur.LinkedInAccountID = &accountID
	return nil
}

type fakeAccountRepo struct {
	mu   sync.Mutex
	rows []*entity.LinkedInAccountStatus
}

func (f *fakeAccountRepo) Exists(ctx context.Context, clientID, accountID string, status entity.AccountStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ClientID == clientID && r.AccountID == accountID && r.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) FindLatest(ctx context.Context, clientID, accountID string) (*entity.LinkedInAccountStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.rows) - 1; i >= 0; i-- {
		if r := f.rows[i]; r.ClientID == clientID && r.AccountID == accountID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Insert(ctx context.Context, row *entity.LinkedInAccountStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row.ID = int64(len(f.rows) + 1)
	row.CreatedAt = time.Now()
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeAccountRepo) UpdateStatus(ctx context.Context, id int64, status entity.AccountStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			r.Status = status
		}
	}
	return nil
}

func (f *fakeAccountRepo) ListCurrent(ctx context.Context, clientID string) ([]*entity.LinkedInAccountStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	latest := map[string]*entity.LinkedInAccountStatus{}
	var order []string
	for _, r := range f.rows {
		if r.ClientID != clientID {
			continue
		}
		if _, seen := latest[r.AccountID]; !seen {
			order = append(order, r.AccountID)
		}
		latest[r.AccountID] = r
	}
	out := make([]*entity.LinkedInAccountStatus, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out, nil
}

type fakeBroker struct {
	accounts map[string]unipile.Account
	link     string
	err      error
}

func (f *fakeBroker) ListAccounts(ctx context.Context) ([]unipile.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []unipile.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeBroker) GetAccount(ctx context.Context, id string) (*unipile.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, unipile.ErrAccountNotFound
	}
	return &a, nil
}

func (f *fakeBroker) CreateHostedLink(ctx context.Context, input unipile.HostedLinkInput) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.link + "?user=" + input.UserID, nil
}

type fakeDispatcher struct {
	mu       sync.Mutex
	triggers []queue.WorkflowTrigger
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, t queue.WorkflowTrigger) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers = append(f.triggers, t)
	return nil
}
