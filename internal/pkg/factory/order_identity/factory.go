package order_identity

import (
	"time"

	"github.com/google/uuid"
)

// IdentityFactory выдает id и время создания заказа.
type IdentityFactory struct {
	now func() time.Time
}

func New() *IdentityFactory {
	return &IdentityFactory{now: time.Now}
}

func NewWithClock(now func() time.Time) *IdentityFactory {
	return &IdentityFactory{now: now}
}

// NewID - UUID v4, 122 случайных бита.
func (f *IdentityFactory) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (f *IdentityFactory) Now() time.Time {
	return f.now().UTC()
}
