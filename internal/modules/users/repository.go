package users

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// Repository is the user store
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// UserRepository stores users in the User collection
type UserRepository struct {
	docs *database.Collection[User]
	log  zerolog.Logger
}

// NewRepository creates a user repository
func NewRepository(store database.DocumentStore, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		docs: database.NewCollection[User](store, database.CollectionUsers),
		log:  log.With().Str("repo", "users").Logger(),
	}
}

// Create assigns an id and creation timestamp and stores the user
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	user.ID = r.docs.NewID()
	user.CreatedOnDate = time.Now().UTC()

	if err := r.docs.Insert(ctx, user.ID, user); err != nil {
		return err
	}

	r.log.Info().Str("user_id", user.ID).Msg("User created")
	return nil
}

// GetAll returns every user
func (r *UserRepository) GetAll(ctx context.Context) ([]User, error) {
	return r.docs.FindAll(ctx)
}

// GetByID returns one user or database.ErrNotFound
func (r *UserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.docs.FindByID(ctx, id)
}
