package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aldisetiawan/go-user-address-api/internal/domain/entity"
	"github.com/aldisetiawan/go-user-address-api/internal/domain/repository"
	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/helpers"
	"github.com/aldisetiawan/go-user-address-api/pkg/mailer"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// CreateUserInput is the POST /users payload.
type CreateUserInput struct {
	Email       string   `json:"email" binding:"required,email"`
	FirstName   string   `json:"firstName" binding:"required,max=100"`
	LastName    string   `json:"lastName" binding:"required,max=100"`
	Password    string   `json:"password" binding:"required,pwd"`
	PhoneNumber string   `json:"phoneNumber" binding:"omitempty,max=20"`
	Avatar      string   `json:"avatar" binding:"omitempty,url"`
	Roles       []string `json:"roles" binding:"omitempty,dive,oneof=user admin"`
}

// UpdateUserInput is the PUT /users/:id payload; nil fields stay untouched.
type UpdateUserInput struct {
	Email       *string  `json:"email" binding:"omitempty,email"`
	FirstName   *string  `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string  `json:"lastName" binding:"omitempty,max=100"`
	Password    *string  `json:"password" binding:"omitempty,pwd"`
	IsActive    *bool    `json:"isActive"`
	Avatar      *string  `json:"avatar" binding:"omitempty,url"`
	PhoneNumber *string  `json:"phoneNumber" binding:"omitempty,max=20"`
	Roles       []string `json:"roles" binding:"omitempty,dive,oneof=user admin"`
}

// UserService owns user lifecycle, credential validation and avatar storage.
type UserService struct {
	repo      repository.UserRepository
	storage   *storage.Client
	bucket    string
	publisher *helpers.RabbitPublisher
	appName   string
	logger    *logrus.Logger
}

func NewUserService(repo repository.UserRepository, st *storage.Client, bucket string, publisher *helpers.RabbitPublisher, appName string, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:      repo,
		storage:   st,
		bucket:    bucket,
		publisher: publisher,
		appName:   appName,
		logger:    logger,
	}
}

// Create registers a user. A taken email yields a Conflict with a field-level
// error; a welcome email job is published best effort.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*UserView, error) {
	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already in use", apperrors.FieldError{
			Field:  "email",
			Errors: []string{"email already in use"},
			Value:  in.Email,
		})
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{"user"}
	}
	created, err := s.repo.Create(ctx, &entity.User{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Password:    hash,
		IsActive:    true,
		Avatar:      in.Avatar,
		Roles:       roles,
		PhoneNumber: in.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	s.publishWelcomeEmail(created)
	return NewUserView(created), nil
}

// Update applies a partial update. The password is re-hashed only when a new
// one arrives; leaving it out keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*UserView, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user")
	}

	if in.Email != nil && *in.Email != u.Email {
		other, err := s.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apperrors.Conflict("email already in use", apperrors.FieldError{
				Field:  "email",
				Errors: []string{"email already in use"},
				Value:  *in.Email,
			})
		}
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Avatar != nil {
		u.Avatar = *in.Avatar
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Roles != nil {
		u.Roles = in.Roles
	}
	u.Password = ""
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return NewUserView(updated), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperrors.NotFound("user")
	}
	return s.repo.Delete(ctx, id)
}

func (s *UserService) FindByID(ctx context.Context, id string) (*UserView, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user")
	}
	return NewUserView(u), nil
}

// FindAll lists users, paginated when page or limit was requested.
func (s *UserService) FindAll(ctx context.Context, opts pagination.Options) ([]UserView, *pagination.Meta, error) {
	if opts.Requested() {
		users, meta, err := s.repo.Paginate(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		return NewUserViews(users), &meta, nil
	}
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return NewUserViews(users), nil, nil
}

// Search pages users matching q; a blank query degrades to plain pagination.
func (s *UserService) Search(ctx context.Context, q string, opts pagination.Options) ([]UserView, pagination.Meta, error) {
	q = strings.TrimSpace(q)
	var (
		users []entity.User
		meta  pagination.Meta
		err   error
	)
	if q == "" {
		users, meta, err = s.repo.Paginate(ctx, opts)
	} else {
		users, meta, err = s.repo.Search(ctx, q, opts)
	}
	if err != nil {
		return nil, meta, err
	}
	return NewUserViews(users), meta, nil
}

// ValidatePassword checks credentials against the stored hash. It returns nil
// for an unknown email or wrong password, never an error, so callers cannot
// distinguish the two cases.
func (s *UserService) ValidatePassword(ctx context.Context, email, password string) *UserView {
	u, err := s.repo.GetWithPassword(ctx, email)
	if err != nil {
		s.logger.WithError(err).Warn("credential lookup failed")
		return nil
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil
	}
	u.Password = ""
	return NewUserView(u)
}

// UploadAvatar stores the file in GCS under avatars/<userID>/ and saves the
// public URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, id, filename, contentType string, r io.Reader) (*UserView, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, apperrors.Internal("file storage is not configured")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NotFound("user")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	base := helpers.Slugify(strings.TrimSuffix(filepath.Base(filename), ext))
	objectPath := fmt.Sprintf("avatars/%s/%s-%s%s", id, uuid.NewString(), base, ext)
	url, err := helpers.UploadObject(ctx, s.storage, s.bucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	u.Avatar = url
	u.Password = ""
	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return NewUserView(updated), nil
}

// publishWelcomeEmail enqueues the welcome email job. Failures are logged and
// never surface to the request.
func (s *UserService) publishWelcomeEmail(u *entity.User) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.publisher.PublishJSON(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: "welcome",
		Data: map[string]any{
			"Name":    helpers.Capitalize(u.FirstName),
			"Email":   u.Email,
			"AppName": s.appName,
		},
	})
	if err != nil {
		s.logger.WithError(err).WithField("email", u.Email).Warn("failed to publish welcome email job")
	}
}
