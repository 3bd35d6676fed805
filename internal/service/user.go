package service

import (
	"context"
	"time"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/rs/zerolog"
)

// userService holds usager use-case logic: validation + orchestration, no transport details.
type userService struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{repo: repo, log: l}
}

func (s *userService) ListUsers(ctx context.Context, q repository.ListQuery) (repository.PageResult[model.User], error) {
	start := time.Now()
	q = normalizeListQuery(q)
	res, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("kind", repository.Kind(err)).Int("page", q.Page).Int("limit", q.Limit).Msg("list usagers failed")
		return repository.PageResult[model.User]{}, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("page", res.Page).Int("total", res.Total).Msg("usagers listed")
	return res, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (model.User, error) {
	if id <= 0 {
		return model.User{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("usager_id", id).Msg("get usager failed")
		return model.User{}, err
	}
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	start := time.Now()
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("usager validation failed")
		return model.User{}, err
	}

	out, err := s.repo.Create(ctx, in)
	if err != nil {
		// Repository surfaces taxonomy errors already, do not wrap.
		s.log.Error().Err(err).Str("email", in.Email).Msg("create usager failed")
		return model.User{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("usager_id", out.ID).Msg("usager created")
	return out, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	start := time.Now()
	in = normalizeInput(in)
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if err := validateInput(in); err != nil {
		ferrs = append(ferrs, FieldErrors(err)...)
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Int64("usager_id", id).Interface("field_errors", ferrs).Msg("usager validation failed")
		return model.User{}, err
	}

	out, err := s.repo.Update(ctx, id, in)
	if err != nil {
		s.log.Error().Err(err).Int64("usager_id", id).Msg("update usager failed")
		return model.User{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("usager_id", out.ID).Msg("usager updated")
	return out, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("usager_id", id).Msg("delete usager failed")
		return err
	}
	s.log.Info().Int64("usager_id", id).Msg("usager deleted")
	return nil
}
