package adaptertest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// PotRepository is an in-memory adapter.PotRepository.
type PotRepository struct {
	mu   sync.Mutex
	pots map[uuid.UUID]entity.Pot

	Err error
}

// NewPotRepository creates an empty PotRepository.
func NewPotRepository() *PotRepository {
	return &PotRepository{pots: make(map[uuid.UUID]entity.Pot)}
}

// Seed stores pots without going through Create.
func (r *PotRepository) Seed(pots ...*entity.Pot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pots {
		r.pots[p.ID] = *p
	}
}

func (r *PotRepository) Create(_ context.Context, pot *entity.Pot) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pots[pot.ID] = *pot
	return nil
}

func (r *PotRepository) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*entity.Pot, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pots[id]
	if !ok || p.UserID != userID {
		return nil, domainerror.ErrPotNotFound
	}
	return &p, nil
}

func (r *PotRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Pot, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Pot, 0)
	for _, p := range r.pots {
		if p.UserID == userID {
			found := p
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *PotRepository) ExistsByUserAndName(_ context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pots {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.UserID == userID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *PotRepository) Update(_ context.Context, pot *entity.Pot) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pots[pot.ID]; !ok {
		return domainerror.ErrPotNotFound
	}
	r.pots[pot.ID] = *pot
	return nil
}

func (r *PotRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pots[id]
	if !ok || p.UserID != userID {
		return domainerror.ErrPotNotFound
	}
	delete(r.pots, id)
	return nil
}

// CategoryRepository is an in-memory adapter.CategoryRepository.
type CategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]entity.Category

	Err error
}

// NewCategoryRepository creates an empty CategoryRepository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[uuid.UUID]entity.Category)}
}

// Seed stores categories without going through Create.
func (r *CategoryRepository) Seed(categories ...*entity.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range categories {
		r.categories[c.ID] = *c
	}
}

// Names returns the stored category names in sorted order.
func (r *CategoryRepository) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.categories))
	for _, c := range r.categories {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) ExistsByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *CategoryRepository) FindAll(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Category, 0)
	for _, c := range r.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		found := c
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *entity.Category) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	r.categories[category.ID] = *category
	return nil
}

// NotificationRepository is an in-memory adapter.NotificationRepository.
type NotificationRepository struct {
	mu            sync.Mutex
	notifications []*entity.Notification

	Err error
}

// NewNotificationRepository creates an empty NotificationRepository.
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

// All returns every stored notification in insertion order.
func (r *NotificationRepository) All() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entity.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		result = append(result, *n)
	}
	return result
}

func (r *NotificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *notification
	r.notifications = append(r.notifications, &stored)
	return nil
}

func (r *NotificationRepository) FindByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Notification, 0)
	for i := len(r.notifications) - 1; i >= 0; i-- {
		n := r.notifications[i]
		if n.UserID != userID {
			continue
		}
		found := *n
		result = append(result, &found)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(_ context.Context, id, userID uuid.UUID) (*entity.Notification, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			found := *n
			return &found, nil
		}
	}
	return nil, domainerror.ErrNotificationNotFound
}

func (r *NotificationRepository) MarkAllAsRead(_ context.Context, userID uuid.UUID) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// NotificationPublisher records published notifications.
type NotificationPublisher struct {
	mu        sync.Mutex
	published []entity.Notification

	Err error
}

// Published returns the notifications passed to Publish.
func (p *NotificationPublisher) Published() []entity.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.Notification{}, p.published...)
}

func (p *NotificationPublisher) Publish(_ context.Context, notification *entity.Notification) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, *notification)
	return nil
}

// UserRepository is an in-memory adapter.UserRepository.
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User

	Err error
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
