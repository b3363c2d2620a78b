package service

import (
	"context"
	"testing"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMemberServiceForTest() (*memberService, *MockMemberRepository, *MockRequestRepository, *MockProgramRepository, *MockStatsRepository, *MockFileStorage) {
	memberRepo := new(MockMemberRepository)
	requestRepo := new(MockRequestRepository)
	programRepo := new(MockProgramRepository)
	statsRepo := new(MockStatsRepository)
	fileStorage := new(MockFileStorage)
	svc := NewMemberService(memberRepo, requestRepo, programRepo, statsRepo, fileStorage).(*memberService)
	return svc, memberRepo, requestRepo, programRepo, statsRepo, fileStorage
}

func TestRegisterSetsEndDateOnePlanAhead(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	newID := primitive.NewObjectID()
	var created *domain.Member
	memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Member)
		}).
		Return(newID, nil).Once()

	member, err := svc.Register(ctx, "Anna Ivanova", "anna@example.com", "+100200300", domain.PlanThreeMonth)

	assert.NoError(t, err)
	assert.Equal(t, newID, member.ID)
	assert.Equal(t, created.StartDate.AddDate(0, 3, 0), created.EndDate)
	memberRepo.AssertExpectations(t)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	memberRepo.On("Create", ctx, mock.AnythingOfType("*domain.Member")).
		Return(primitive.NilObjectID, repository.ErrDuplicateEmail).Once()

	member, err := svc.Register(ctx, "Anna Ivanova", "anna@example.com", "", domain.PlanMonthly)

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, member)
	memberRepo.AssertExpectations(t)
}

func TestRegisterRequiresNameAndEmail(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()

	_, err := svc.Register(context.Background(), "", "anna@example.com", "", domain.PlanMonthly)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Register(context.Background(), "Anna", "", "", domain.PlanMonthly)
	assert.ErrorIs(t, err, ErrValidationFailed)

	memberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRenewExtendsFromCurrentEndDate(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	futureEnd := time.Now().UTC().AddDate(0, 0, 10).Truncate(time.Second)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{
		ID:      memberID,
		Name:    "Boris",
		Plan:    domain.PlanMonthly,
		EndDate: futureEnd,
	}, nil).Once()
	memberRepo.On("Update", ctx, mock.AnythingOfType("*domain.Member")).Return(nil).Once()

	member, err := svc.Renew(ctx, memberID, domain.PlanMonthly)

	assert.NoError(t, err)
	// Early renewal stacks: the ten remaining days are preserved.
	assert.Equal(t, futureEnd.AddDate(0, 1, 0), member.EndDate)
	assert.Equal(t, domain.PlanMonthly, member.Plan)
	memberRepo.AssertExpectations(t)
}

func TestRenewWithUnknownPlanLeavesEndDateUntouched(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	end := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	memberRepo.On("GetByID", ctx, memberID).Return(&domain.Member{
		ID:      memberID,
		Plan:    domain.PlanMonthly,
		EndDate: end,
	}, nil).Once()
	memberRepo.On("Update", ctx, mock.AnythingOfType("*domain.Member")).Return(nil).Once()

	member, err := svc.Renew(ctx, memberID, domain.Plan("lifetime"))

	assert.NoError(t, err)
	assert.Equal(t, end, member.EndDate)
	assert.Equal(t, domain.Plan("lifetime"), member.Plan)
}

func TestRenewUnknownMember(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	memberRepo.On("GetByID", ctx, memberID).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.Renew(ctx, memberID, domain.PlanMonthly)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestDeleteCascadesToOwnedRecords(t *testing.T) {
	svc, memberRepo, requestRepo, programRepo, statsRepo, fileStorage := newMemberServiceForTest()
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	memberRepo.On("Delete", ctx, memberID).Return(nil).Once()
	programRepo.On("GetByMemberID", ctx, memberID).Return(&domain.Program{
		MemberID:  memberID,
		ObjectKey: "programs/abc.pdf",
	}, nil).Once()
	fileStorage.On("DeleteObject", ctx, "programs/abc.pdf").Return(nil).Once()
	programRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()
	requestRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()
	statsRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()

	err := svc.Delete(ctx, memberID)

	assert.NoError(t, err)
	memberRepo.AssertExpectations(t)
	programRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	statsRepo.AssertExpectations(t)
	fileStorage.AssertExpectations(t)
}

func TestDeleteWithoutProgramSkipsBlobCleanup(t *testing.T) {
	svc, memberRepo, requestRepo, programRepo, statsRepo, fileStorage := newMemberServiceForTest()
	ctx := context.Background()

	memberID := primitive.NewObjectID()
	memberRepo.On("Delete", ctx, memberID).Return(nil).Once()
	programRepo.On("GetByMemberID", ctx, memberID).Return(nil, repository.ErrNotFound).Once()
	programRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()
	requestRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()
	statsRepo.On("DeleteByMemberID", ctx, memberID).Return(nil).Once()

	err := svc.Delete(ctx, memberID)

	assert.NoError(t, err)
	fileStorage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestListAttachesOwnedRecords(t *testing.T) {
	svc, memberRepo, requestRepo, programRepo, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	withRecords := domain.Member{ID: primitive.NewObjectID(), Name: "Anna"}
	without := domain.Member{ID: primitive.NewObjectID(), Name: "Boris"}
	memberRepo.On("GetAll", ctx).Return([]domain.Member{withRecords, without}, nil).Once()

	requestRepo.On("GetByMemberID", ctx, withRecords.ID).Return(&domain.ProgramRequest{
		MemberID: withRecords.ID,
		Status:   domain.RequestPending,
	}, nil).Once()
	programRepo.On("GetByMemberID", ctx, withRecords.ID).Return(&domain.Program{
		MemberID: withRecords.ID,
	}, nil).Once()

	requestRepo.On("GetByMemberID", ctx, without.ID).Return(nil, repository.ErrNotFound).Once()
	programRepo.On("GetByMemberID", ctx, without.ID).Return(nil, repository.ErrNotFound).Once()

	details, err := svc.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, details, 2)
	assert.NotNil(t, details[0].Request)
	assert.NotNil(t, details[0].Program)
	assert.Nil(t, details[1].Request)
	assert.Nil(t, details[1].Program)
}

func TestSearchByEmailNotFound(t *testing.T) {
	svc, memberRepo, _, _, _, _ := newMemberServiceForTest()
	ctx := context.Background()

	memberRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()

	detail, err := svc.SearchByEmail(ctx, "ghost@example.com")

	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Nil(t, detail)
}
