package memory

import (
	"fmt"
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	store *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository crea el repositorio sobre el Store dado.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; ok {
		return fmt.Errorf("usuario %s: %w", user.ID, domain.ErrConflict)
	}
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %s: %w", user.Email, domain.ErrEmailYaRegistrado)
		}
	}
	c := cloneUser(user)
	c.FechaCreacion = time.Now()
	r.store.users[c.ID] = c
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("usuario %s: %w", email, domain.ErrNotFound)
}

func (r *UserRepository) Update(user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.users[user.ID]
	if !ok {
		return fmt.Errorf("usuario %s: %w", user.ID, domain.ErrNotFound)
	}
	c := cloneUser(user)
	c.FechaCreacion = prev.FechaCreacion
	r.store.users[c.ID] = c
	return nil
}
