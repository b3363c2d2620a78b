package service

import (
	"context"
	"errors"
	"log"
	"time"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"
	"ironpeak/gym-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrEmailTaken       = errors.New("member with this email already exists")
	ErrValidationFailed = errors.New("validation failed")
)

// MemberDetail bundles a member with its owned request and program for
// listing responses. Request and Program are nil when absent.
type MemberDetail struct {
	Member  domain.Member
	Request *domain.ProgramRequest
	Program *domain.Program
}

// MemberService handles member registration and the membership lifecycle.
type MemberService interface {
	Register(ctx context.Context, name, email, phone string, plan domain.Plan) (*domain.Member, error)
	List(ctx context.Context) ([]MemberDetail, error)
	SearchByEmail(ctx context.Context, email string) (*MemberDetail, error)
	Renew(ctx context.Context, memberID primitive.ObjectID, newPlan domain.Plan) (*domain.Member, error)
	Delete(ctx context.Context, memberID primitive.ObjectID) error
}

// memberService implements the MemberService interface.
type memberService struct {
	memberRepo  repository.MemberRepository
	requestRepo repository.ProgramRequestRepository
	programRepo repository.ProgramRepository
	statsRepo   repository.StatsRepository
	fileStorage storage.FileStorage
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	memberRepo repository.MemberRepository,
	requestRepo repository.ProgramRequestRepository,
	programRepo repository.ProgramRepository,
	statsRepo repository.StatsRepository,
	fileStorage storage.FileStorage,
) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		requestRepo: requestRepo,
		programRepo: programRepo,
		statsRepo:   statsRepo,
		fileStorage: fileStorage,
	}
}

// Register creates a member with an end date one plan increment from now.
func (s *memberService) Register(ctx context.Context, name, email, phone string, plan domain.Plan) (*domain.Member, error) {
	if name == "" || email == "" {
		return nil, ErrValidationFailed
	}

	now := time.Now().UTC()
	member := &domain.Member{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Plan:      plan,
		StartDate: now,
		EndDate:   domain.ExtendEndDate(now, plan),
	}

	memberID, err := s.memberRepo.Create(ctx, member)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	member.ID = memberID

	return member, nil
}

// List returns every member with its owned request and program attached.
func (s *memberService) List(ctx context.Context) ([]MemberDetail, error) {
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]MemberDetail, 0, len(members))
	for _, m := range members {
		detail := MemberDetail{Member: m}
		detail.Request, detail.Program = s.ownedRecords(ctx, m.ID)
		details = append(details, detail)
	}
	return details, nil
}

// SearchByEmail finds a single member by exact (case-insensitive) email.
func (s *memberService) SearchByEmail(ctx context.Context, email string) (*MemberDetail, error) {
	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	detail := &MemberDetail{Member: *member}
	detail.Request, detail.Program = s.ownedRecords(ctx, member.ID)
	return detail, nil
}

// Renew extends the membership from the CURRENT end date, so remaining time
// is preserved and early renewal stacks. An unrecognized plan leaves the end
// date untouched (historical behavior, kept deliberately).
func (s *memberService) Renew(ctx context.Context, memberID primitive.ObjectID, newPlan domain.Plan) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.EndDate = domain.ExtendEndDate(member.EndDate, newPlan)
	member.Plan = newPlan

	if err := s.memberRepo.Update(ctx, member); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Delete removes a member and cascades to its owned records, including the
// generated program document in blob storage.
func (s *memberService) Delete(ctx context.Context, memberID primitive.ObjectID) error {
	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if program, err := s.programRepo.GetByMemberID(ctx, memberID); err == nil && program.ObjectKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, program.ObjectKey); err != nil {
			log.Printf("ERROR: Failed to delete program document for member %s: %v", memberID.Hex(), err)
		}
	}
	if err := s.programRepo.DeleteByMemberID(ctx, memberID); err != nil {
		log.Printf("ERROR: Failed to delete program for member %s: %v", memberID.Hex(), err)
	}
	if err := s.requestRepo.DeleteByMemberID(ctx, memberID); err != nil {
		log.Printf("ERROR: Failed to delete request for member %s: %v", memberID.Hex(), err)
	}
	if err := s.statsRepo.DeleteByMemberID(ctx, memberID); err != nil {
		log.Printf("ERROR: Failed to delete stats for member %s: %v", memberID.Hex(), err)
	}
	return nil
}

// ownedRecords fetches the member's request and program, treating absence
// as nil rather than an error.
func (s *memberService) ownedRecords(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, *domain.Program) {
	var request *domain.ProgramRequest
	var program *domain.Program

	if r, err := s.requestRepo.GetByMemberID(ctx, memberID); err == nil {
		request = r
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: Failed to load request for member %s: %v", memberID.Hex(), err)
	}

	if p, err := s.programRepo.GetByMemberID(ctx, memberID); err == nil {
		program = p
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("ERROR: Failed to load program for member %s: %v", memberID.Hex(), err)
	}

	return request, program
}
