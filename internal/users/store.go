package users

import (
	"context"
	"log/slog"

	"github.com/KeshavWanjale/usercrud/common/dbutil"
	"github.com/KeshavWanjale/usercrud/pkg/errors"
	"github.com/KeshavWanjale/usercrud/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const tracerName = "github.com/KeshavWanjale/usercrud/internal/users"

type CreateIn struct {
	Name string
	Age  int
}

type UpdateIn struct {
	Name string
	Age  int
}

type Store interface {
	List(ctx context.Context) ([]User, error)
	User(ctx context.Context, id uint) (*User, error)
	Create(ctx context.Context, in CreateIn) (*User, error)
	Update(ctx context.Context, id uint, in UpdateIn) (*User, error)
	Delete(ctx context.Context, id uint) error
}

type GormStore struct {
	log    *slog.Logger
	db     *gorm.DB
	tracer trace.Tracer
}

var _ Store = (*GormStore)(nil)

func NewStore(log *slog.Logger, db *gorm.DB) *GormStore {
	return &GormStore{log: log, db: db, tracer: otel.Tracer(tracerName)}
}

// Migrate creates or updates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}

func (s *GormStore) List(ctx context.Context) (users []User, err error) {
	ctx, done := s.observe(ctx, "list", 0)
	defer func() { done(err) }()

	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.New("failed to list users").Wrap(err)
	}
	return users, nil
}

func (s *GormStore) User(ctx context.Context, id uint) (user *User, err error) {
	ctx, done := s.observe(ctx, "get", id)
	defer func() { done(err) }()

	user, err = dbutil.FindOne[User](s.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		if errors.Is(err, errors.NotFound) {
			return nil, errors.NotFound.Explain("User not found")
		}
		return nil, errors.New("failed to get user").Wrap(err)
	}
	return user, nil
}

func (s *GormStore) Create(ctx context.Context, in CreateIn) (user *User, err error) {
	ctx, done := s.observe(ctx, "create", 0)
	defer func() { done(err) }()

	user = &User{Name: in.Name, Age: in.Age}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}

	s.log.DebugContext(ctx, "user created", slog.Uint64("id", uint64(user.ID)))
	return user, nil
}

// Update overwrites every mutable column of the user, zero values included.
func (s *GormStore) Update(ctx context.Context, id uint, in UpdateIn) (user *User, err error) {
	ctx, done := s.observe(ctx, "update", id)
	defer func() { done(err) }()

	user = &User{ID: id, Name: in.Name, Age: in.Age}
	result := s.db.WithContext(ctx).Model(&User{ID: id}).Select("name", "age").Updates(user)
	if result.Error != nil {
		return nil, dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound.Explain("User not found")
	}

	s.log.DebugContext(ctx, "user updated", slog.Uint64("id", uint64(id)))
	return user, nil
}

func (s *GormStore) Delete(ctx context.Context, id uint) (err error) {
	ctx, done := s.observe(ctx, "delete", id)
	defer func() { done(err) }()

	result := s.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return dbutil.WrapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound.Explain("User not found")
	}

	s.log.DebugContext(ctx, "user deleted", slog.Uint64("id", uint64(id)))
	return nil
}

// observe starts a span for op and returns the function that ends it and
// counts the outcome.
func (s *GormStore) observe(ctx context.Context, op string, id uint) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "users."+op, trace.WithSpanKind(trace.SpanKindClient))
	if id != 0 {
		span.SetAttributes(attribute.Int64("user.id", int64(id)))
	}

	return ctx, func(err error) {
		outcome := "ok"
		switch {
		case err == nil:
		case errors.Is(err, errors.NotFound):
			outcome = "not_found"
		default:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.UserOperations.WithLabelValues(op, outcome).Inc()
		span.End()
	}
}
