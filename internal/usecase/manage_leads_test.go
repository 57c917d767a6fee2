package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestListLeadsAppliesDefaults(t *testing.T) {
	repo := new(MockLeadRepo)
	ctx := context.Background()
	repo.On("List", ctx, entity.LeadFilter{UserID: "user-1", Status: entity.LeadSent, Search: "acme", Limit: 50}).Return(nil, nil)

	uc := NewManageLeadsUseCase(repo, zap.NewNop())
	leads, err := uc.List(ctx, entity.LeadFilter{UserID: "user-1", Status: "SENT", Search: " acme ", Offset: -3})
	require.NoError(t, err)

	assert.NotNil(t, leads)
	repo.AssertExpectations(t)
}

func TestListLeadsCapsLimit(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.LeadFilter) bool { return f.Limit == 500 })).
		Return([]*entity.Lead{{ID: "l1"}}, nil)

	leads, err := NewManageLeadsUseCase(repo, zap.NewNop()).List(context.Background(), entity.LeadFilter{UserID: "u", Limit: 10000})
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestListLeadsRejectsUnknownStatus(t *testing.T) {
	_, err := NewManageLeadsUseCase(new(MockLeadRepo), zap.NewNop()).
		List(context.Background(), entity.LeadFilter{UserID: "u", Status: "archived"})
	assert.True(t, IsDomainError(err))
}

func TestGetLeadNotFound(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("FindByID", mock.Anything, "u", "missing").Return(nil, entity.ErrLeadNotFound)

	_, err := NewManageLeadsUseCase(repo, zap.NewNop()).Get(context.Background(), "u", "missing")

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeNotFound, de.Code)
}

func TestUpdateLead(t *testing.T) {
	repo := new(MockLeadRepo)
	ctx := context.Background()
	repo.On("FindByID", ctx, "u", "l1").Return(&entity.Lead{ID: "l1", Company: "acme.com", Status: entity.LeadResearched}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.LeadReplied && l.LeadName == "Ana"
	})).Return(nil)

	replied := entity.LeadReplied
	lead, err := NewManageLeadsUseCase(repo, zap.NewNop()).Update(ctx, "u", "l1", entity.LeadPatch{
		Status:   &replied,
		LeadName: strPtr(" Ana "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", lead.LeadName)
	repo.AssertExpectations(t)
}

func TestUpdateLeadRejectsInvalidStatus(t *testing.T) {
	repo := new(MockLeadRepo)
	bogus := entity.LeadStatus("won")

	_, err := NewManageLeadsUseCase(repo, zap.NewNop()).Update(context.Background(), "u", "l1", entity.LeadPatch{Status: &bogus})

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadCannotClearCompanyAndEmail(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("FindByID", mock.Anything, "u", "l1").Return(&entity.Lead{ID: "l1", Company: "acme.com"}, nil)

	_, err := NewManageLeadsUseCase(repo, zap.NewNop()).Update(context.Background(), "u", "l1", entity.LeadPatch{Company: strPtr("")})
	assert.True(t, IsDomainError(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteLead(t *testing.T) {
	repo := new(MockLeadRepo)
	repo.On("Delete", mock.Anything, "u", "l1").Return(nil)
	repo.On("Delete", mock.Anything, "u", "l2").Return(errors.New("conn refused"))

	uc := NewManageLeadsUseCase(repo, zap.NewNop())
	assert.NoError(t, uc.Delete(context.Background(), "u", "l1"))
	assert.True(t, IsTechnicalError(uc.Delete(context.Background(), "u", "l2")))
}

func TestCampaignStats(t *testing.T) {
	repo := new(MockLeadRepo)
	stats := []entity.CampaignStat{{CampaignName: "Q1", Total: 3, ByStatus: map[entity.LeadStatus]int{entity.LeadSent: 2, entity.LeadReplied: 1}}}
	repo.On("CampaignStats", mock.Anything, "u").Return(stats, nil)

	got, err := NewManageLeadsUseCase(repo, zap.NewNop()).CampaignStats(context.Background(), "u")
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
