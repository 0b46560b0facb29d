package services

import (
	"context"
	"strings"

	"github.com/vytor/vokabox/internal/errors"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/vytor/vokabox/internal/repository"
)

// LearnerService handles learner accounts and admin rights
type LearnerService interface {
	ListLearners(ctx context.Context) ([]models.Learner, error)
	CreateLearner(ctx context.Context, learner models.Learner) (*models.Learner, error)
	GetLearner(ctx context.Context, id int64) (*models.Learner, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
	SetAdmin(ctx context.Context, id int64, admin bool) error
}

type learnerService struct {
	learnerRepo repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learnerRepo repository.LearnerRepository) LearnerService {
	return &learnerService{learnerRepo: learnerRepo}
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing learners")

	learners, err := s.learnerRepo.List(ctx)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, errors.NewStoreError("load learners", err)
	}
	return learners, nil
}

func (s *learnerService) CreateLearner(ctx context.Context, l models.Learner) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	l.Username = strings.ToLower(strings.TrimSpace(l.Username))
	l.DisplayName = strings.TrimSpace(l.DisplayName)
	l.ClassName = strings.TrimSpace(l.ClassName)
	if l.Username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if strings.ContainsAny(l.Username, " \t") {
		return nil, errors.NewValidationError("username", "cannot contain spaces")
	}
	if l.DisplayName == "" {
		l.DisplayName = l.Username
	}
	log.Debug("creating learner: username=%s", l.Username)

	created, err := s.learnerRepo.Upsert(ctx, l)
	if err != nil {
		log.Error("failed to create learner: %v", err)
		return nil, errors.NewStoreError("save learner", err)
	}
	return created, nil
}

func (s *learnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	learner, err := s.learnerRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get learner: %v", err)
		return nil, errors.NewStoreError("load learner", err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", id)
	}
	return learner, nil
}

func (s *learnerService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	ok, err := s.learnerRepo.IsAdmin(ctx, id)
	if err != nil {
		return false, errors.NewStoreError("load admins", err)
	}
	return ok, nil
}

func (s *learnerService) SetAdmin(ctx context.Context, id int64, admin bool) error {
	if _, err := s.GetLearner(ctx, id); err != nil {
		return err
	}
	if err := s.learnerRepo.SetAdmin(ctx, id, admin); err != nil {
		logger.FromContext(ctx).Error("failed to set admin: %v", err)
		return errors.NewStoreError("save admins", err)
	}
	return nil
}
