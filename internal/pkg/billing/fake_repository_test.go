package billing

import (
	"errors"
	"sync"

	"github.com/StageCraftMedia/StageCraft/app/models"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory Repository used across the billing tests. It
// hands out copies, like a DB would, so state changes only happen through the
// write methods.
type fakeRepository struct {
	mu sync.Mutex

	users  map[uint]models.User
	subs   map[uint]models.Subscription
	events []models.SubscriptionEvent

	nextSubID uint
	txErr     error
}

func newFakeRepository(users ...models.User) *fakeRepository {
	r := &fakeRepository{
		users:     make(map[uint]models.User),
		subs:      make(map[uint]models.Subscription),
		nextSubID: 1,
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepository) FindUserByCustomerID(customerID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.StripeCustomerID == customerID && customerID != "" {
			out := u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepository) FindUserByID(userID uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := u
	return &out, nil
}

func (r *fakeRepository) FindSubscriptionByUserID(userID uint) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := s
	return &out, nil
}

func (r *fakeRepository) UpdateUserSubscriptionFields(userID uint, fields UserSubscriptionFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Role = fields.Role
	u.SubscriptionStatus = fields.Status
	u.SubscriptionTier = fields.Tier
	u.StripeSubscriptionID = fields.StripeSubscriptionID
	u.CurrentPeriodEnd = fields.CurrentPeriodEnd
	r.users[userID] = u
	return nil
}

func (r *fakeRepository) UpsertSubscriptionRecord(sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.subs[sub.UserID]; ok {
		sub.ID = existing.ID
	} else {
		sub.ID = r.nextSubID
		r.nextSubID++
	}
	r.subs[sub.UserID] = *sub
	return nil
}

func (r *fakeRepository) SaveUserStripeCustomerID(userID uint, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.StripeCustomerID = customerID
	r.users[userID] = u
	return nil
}

func (r *fakeRepository) CreateSubscriptionEvent(event *models.SubscriptionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeRepository) Transaction(fn func(Repository) error) error {
	if r.txErr != nil {
		return r.txErr
	}
	return fn(r)
}

func (r *fakeRepository) user(userID uint) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID]
}

func (r *fakeRepository) subscription(userID uint) (models.Subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[userID]
	return s, ok
}

func (r *fakeRepository) subscriptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
