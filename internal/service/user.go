package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/echoplay/echoplay/internal/domain"
	"github.com/echoplay/echoplay/internal/ingest"
	"github.com/echoplay/echoplay/internal/repository"
	"github.com/echoplay/echoplay/internal/storage"
)

// UserService manages user profiles and their image assets. After creation the
// catalog-held image file name is the single source of truth: updates never
// regenerate it from the current display name.
type UserService struct {
	repo     repository.Repository
	pipeline *ingest.Pipeline
	store    storage.Store
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo repository.Repository, pipeline *ingest.Pipeline, store storage.Store, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{repo: repo, pipeline: pipeline, store: store, logger: logger}
}

// Create ingests the profile image and writes the user row. A failed row write
// leaves the image on disk and reports it as an orphan.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	names, err := s.pipeline.Ingest(ctx, ingest.Request{
		Fields: ingest.Fields{Name: req.Name},
		Parts:  []ingest.Part{req.Image},
	})
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        uuid.New(),
		Name:      req.Name,
		ImageFile: names[ingest.FieldImage],
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, &domain.OrphanError{Files: []string{user.ImageFile}, Err: err}
	}

	s.logger.Info("user created", "user_id", user.ID, "image_file", user.ImageFile)
	return user, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// Update changes a user's display name and, when a new image part is supplied,
// replaces the image bytes in place. The stored file keeps the name the
// catalog already holds: a fresh ingest landing under a different derived name
// is moved onto the recorded one after the prior file is removed. Only text
// columns change in the catalog.
func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name", domain.ErrMissingField)
	}

	user, err := s.repo.GetUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Image != nil {
		names, err := s.pipeline.Ingest(ctx, ingest.Request{
			Fields: ingest.Fields{Name: req.Name},
			Parts:  []ingest.Part{*req.Image},
		})
		if err != nil {
			return nil, err
		}

		// The name derived from the new display name may differ from the
		// recorded file name; the recorded name stays authoritative.
		if newName := names[ingest.FieldImage]; newName != user.ImageFile {
			exists, err := s.store.Exists(ctx, storage.DirImages, user.ImageFile)
			if err != nil {
				return nil, err
			}
			if exists {
				if err := s.store.Delete(ctx, storage.DirImages, user.ImageFile); err != nil {
					return nil, err
				}
			} else {
				s.logger.Warn("prior image file already absent", "user_id", user.ID, "file", user.ImageFile)
			}
			if err := s.store.Rename(ctx, storage.DirImages, newName, user.ImageFile); err != nil {
				return nil, err
			}
		}
	}

	user.Name = req.Name
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "user_id", user.ID, "image_replaced", req.Image != nil)
	return user, nil
}

// Delete removes a user in order: memberships of the user's playlists, the
// playlists themselves, the user row, then the image file. Steps are
// sequential, not transactional; a failure partway reports which steps
// completed. An image file already absent from disk does not fail the delete.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	var completed []string

	if err := s.repo.DeleteMembershipsByUser(ctx, id); err != nil {
		return fmt.Errorf("delete user memberships: %w", err)
	}
	completed = append(completed, "memberships")

	if err := s.repo.DeletePlaylistsByUser(ctx, id); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "playlists", Err: err}
	}
	completed = append(completed, "playlists")

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "user row", Err: err}
	}
	completed = append(completed, "user row")

	exists, err := s.store.Exists(ctx, storage.DirImages, user.ImageFile)
	if err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "image file", Err: err}
	}
	if !exists {
		s.logger.Warn("image file already absent", "user_id", id, "file", user.ImageFile)
	} else if err := s.store.Delete(ctx, storage.DirImages, user.ImageFile); err != nil {
		return &domain.PartialDeleteError{Completed: completed, Step: "image file", Err: err}
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
