package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ironpeak/gym-app/internal/document"
	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"
	"ironpeak/gym-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidProgram  = errors.New("program validation failed")
	ErrNoProgram       = errors.New("no program found for member")
	ErrDocumentFailure = errors.New("failed to generate program document")
)

const programDocumentTitle = "WORKOUT PROGRAM"

// ProgramService handles program requests and coach-authored programs.
type ProgramService interface {
	RequestProgram(ctx context.Context, memberID primitive.ObjectID, goal, level string) error
	GetRequest(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, error)
	CreateProgram(ctx context.Context, memberID primitive.ObjectID, days []domain.ProgramDay) (*domain.Program, error)
	GetProgram(ctx context.Context, memberID primitive.ObjectID) (*domain.Program, error)
	GetDownloadURL(ctx context.Context, memberID primitive.ObjectID) (string, error)
}

// programService implements the ProgramService interface.
type programService struct {
	memberRepo  repository.MemberRepository
	requestRepo repository.ProgramRequestRepository
	programRepo repository.ProgramRepository
	renderer    document.Renderer
	fileStorage storage.FileStorage
}

// NewProgramService creates a new instance of programService.
func NewProgramService(
	memberRepo repository.MemberRepository,
	requestRepo repository.ProgramRequestRepository,
	programRepo repository.ProgramRepository,
	renderer document.Renderer,
	fileStorage storage.FileStorage,
) ProgramService {
	return &programService{
		memberRepo:  memberRepo,
		requestRepo: requestRepo,
		programRepo: programRepo,
		renderer:    renderer,
		fileStorage: fileStorage,
	}
}

// RequestProgram records the member's ask for a new program. A member holds
// at most one request row; issuing a second request overwrites the goal and
// level in place and resets the status to pending.
func (s *programService) RequestProgram(ctx context.Context, memberID primitive.ObjectID, goal, level string) error {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	request := &domain.ProgramRequest{
		MemberID:    memberID,
		Goal:        goal,
		Level:       level,
		Status:      domain.RequestPending,
		RequestedAt: time.Now().UTC(),
	}
	return s.requestRepo.Upsert(ctx, request)
}

// GetRequest returns the member's request, or nil when none exists.
func (s *programService) GetRequest(ctx context.Context, memberID primitive.ObjectID) (*domain.ProgramRequest, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	request, err := s.requestRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return request, nil
}

// CreateProgram validates and stores the program for a member, generates
// its PDF document, and completes a pending request if one exists. Creating
// a second program for the same member replaces the first entirely.
func (s *programService) CreateProgram(ctx context.Context, memberID primitive.ObjectID, days []domain.ProgramDay) (*domain.Program, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	cleanDays, err := sanitizeDays(days)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	layout := document.BuildLayout(programDocumentTitle, member.Name, cleanDays, now)
	pdfBytes, err := s.renderer.Render(layout)
	if err != nil {
		log.Printf("ERROR: Failed to render program document for member %s: %v", memberID.Hex(), err)
		return nil, ErrDocumentFailure
	}

	objectKey := fmt.Sprintf("programs/%s.pdf", uuid.NewString())
	if err := s.fileStorage.Upload(ctx, objectKey, "application/pdf", pdfBytes); err != nil {
		return nil, ErrDocumentFailure
	}

	// Remember the previous document so it can be cleaned up after the
	// replace. Losing the race here only leaks a blob, never a row.
	var oldObjectKey string
	if old, err := s.programRepo.GetByMemberID(ctx, memberID); err == nil {
		oldObjectKey = old.ObjectKey
	}

	program := &domain.Program{
		MemberID:  memberID,
		Days:      cleanDays,
		ObjectKey: objectKey,
		FileName:  fmt.Sprintf("program_%s_%d.pdf", memberID.Hex(), now.UnixMilli()),
		CreatedAt: now,
	}
	if err := s.programRepo.Upsert(ctx, program); err != nil {
		return nil, err
	}

	if oldObjectKey != "" && oldObjectKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, oldObjectKey); err != nil {
			log.Printf("ERROR: Failed to delete replaced program document '%s': %v", oldObjectKey, err)
		}
	}

	// Complete the pending request, if any.
	if request, err := s.requestRepo.GetByMemberID(ctx, memberID); err == nil && request.Status == domain.RequestPending {
		if err := s.requestRepo.SetStatus(ctx, memberID, domain.RequestCompleted); err != nil {
			log.Printf("ERROR: Failed to complete request for member %s: %v", memberID.Hex(), err)
		}
	}

	return program, nil
}

// GetProgram returns the member's program, or nil when none exists.
func (s *programService) GetProgram(ctx context.Context, memberID primitive.ObjectID) (*domain.Program, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	program, err := s.programRepo.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return program, nil
}

// GetDownloadURL returns a presigned URL for the member's program document.
func (s *programService) GetDownloadURL(ctx context.Context, memberID primitive.ObjectID) (string, error) {
	program, err := s.GetProgram(ctx, memberID)
	if err != nil {
		return "", err
	}
	if program == nil || program.ObjectKey == "" {
		return "", ErrNoProgram
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, program.ObjectKey, storage.DefaultPresignedURLExpiry)
}

// sanitizeDays validates the submitted day sequence. Exercises with empty
// names are dropped; a day that has no name or ends up with no exercises
// rejects the whole submission.
func sanitizeDays(days []domain.ProgramDay) ([]domain.ProgramDay, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidProgram)
	}

	clean := make([]domain.ProgramDay, 0, len(days))
	for _, day := range days {
		if strings.TrimSpace(day.DayName) == "" {
			return nil, fmt.Errorf("%w: day name is required", ErrInvalidProgram)
		}

		exercises := make([]domain.ProgramExercise, 0, len(day.Exercises))
		for _, ex := range day.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				continue
			}
			exercises = append(exercises, ex)
		}
		if len(exercises) == 0 {
			return nil, fmt.Errorf("%w: day %q has no exercises", ErrInvalidProgram, day.DayName)
		}

		day.Exercises = exercises
		clean = append(clean, day)
	}
	return clean, nil
}
