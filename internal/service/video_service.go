package service

import (
	"context"
	"errors"
	"strings"

	"ironpeak/gym-app/internal/domain"
	"ironpeak/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrVideoNotFound = errors.New("exercise video not found")
)

const embedURLPrefix = "https://www.youtube.com/embed/"

// VideoService manages the exercise video library.
type VideoService interface {
	Add(ctx context.Context, name, url string) (*domain.ExerciseVideo, error)
	List(ctx context.Context) ([]domain.ExerciseVideo, error)
	Remove(ctx context.Context, id primitive.ObjectID) error
}

// videoService implements the VideoService interface.
type videoService struct {
	videoRepo repository.ExerciseVideoRepository
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo repository.ExerciseVideoRepository) VideoService {
	return &videoService{videoRepo: videoRepo}
}

// Add stores a new video in the library.
func (s *videoService) Add(ctx context.Context, name, url string) (*domain.ExerciseVideo, error) {
	if name == "" || url == "" {
		return nil, ErrValidationFailed
	}

	video := &domain.ExerciseVideo{Name: name, URL: url}
	videoID, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		return nil, err
	}
	video.ID = videoID
	return video, nil
}

// List returns the whole library.
func (s *videoService) List(ctx context.Context) ([]domain.ExerciseVideo, error) {
	return s.videoRepo.GetAll(ctx)
}

// Remove deletes a video from the library.
func (s *videoService) Remove(ctx context.Context, id primitive.ObjectID) error {
	err := s.videoRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	return nil
}

// ResolveEmbedURL normalizes the known video-link shapes (long-form watch
// link, short link, existing embed link) into an embeddable URL by pulling
// out the identifier segment. An unrecognized shape yields an embed URL
// with an empty identifier, which renders as a dead embed rather than an
// error.
func ResolveEmbedURL(raw string) string {
	if strings.Contains(raw, "/embed/") {
		return raw
	}

	var id string
	if i := strings.Index(raw, "watch?v="); i >= 0 {
		id = raw[i+len("watch?v="):]
	} else if i := strings.Index(raw, "youtu.be/"); i >= 0 {
		id = raw[i+len("youtu.be/"):]
	}
	if j := strings.IndexAny(id, "?&"); j >= 0 {
		id = id[:j]
	}

	return embedURLPrefix + id
}

// MatchVideo finds the first library video whose name equals the exercise
// name case-insensitively. No match returns nil; this is a soft join, not
// an error.
func MatchVideo(exerciseName string, videos []domain.ExerciseVideo) *domain.ExerciseVideo {
	for i := range videos {
		if strings.EqualFold(videos[i].Name, exerciseName) {
			return &videos[i]
		}
	}
	return nil
}
