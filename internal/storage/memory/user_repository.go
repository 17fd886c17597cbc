package memory

import (
	"sort"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type userRepositoryInMemory struct {
	store *Store
}

// NewUserRepository возвращает in-memory реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepositoryInMemory{store: store}
}

func (r *userRepositoryInMemory) List() ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (r *userRepositoryInMemory) Get(id int64) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepositoryInMemory) GetByUserName(userName string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.UserName == userName {
			return user, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *userRepositoryInMemory) Create(user domain.User) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.UserName == user.UserName {
			return domain.User{}, domain.ErrUserNameTaken
		}
	}

	r.store.nextUserID++
	user.ID = r.store.nextUserID
	r.store.users[user.ID] = user

	return user, nil
}

func (r *userRepositoryInMemory) Delete(id int64) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	delete(r.store.users, id)

	return user, nil
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
