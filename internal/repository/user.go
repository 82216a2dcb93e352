package repository

import (
	"context"
	"fmt"

	"github.com/festflow/festflow-api/internal/domain"
	"github.com/festflow/festflow-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindRegisteredEventIDs(ctx context.Context, userID uint) ([]uint, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
		College:  user.College,
		Phone:    user.Phone,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	u := r.daoToDomain(created)
	u.RegisteredEvents = []uint{}

	return u, nil
}

// FindByID loads the user along with the ids of the events it joined.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	eventIDs, err := r.dao.FindRegisteredEventIDs(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindRegisteredEventIDs -> %w", err)
	}

	if eventIDs == nil {
		eventIDs = []uint{}
	}

	u := r.daoToDomain(found)
	u.RegisteredEvents = eventIDs

	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		College:   u.College,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func summaryDaoToDomain(u dao.User) domain.UserSummary {
	return domain.UserSummary{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		College: u.College,
	}
}
