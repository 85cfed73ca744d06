package content

import (
	"context"

	"kingdomstudio/internal/domain/registration"
)

const entityRegistration = "registration"

// ListRegistrations returns every registration, newest first.
// Unlike the public lists it reports failure as *RemoteReadError: the
// caller decides how an unreadable privileged collection is shown.
func (a *Access) ListRegistrations(ctx context.Context) ([]registration.Registration, error) {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	list, err := a.stores.Registrations.List(ctx)
	if err != nil {
		a.readFailed("list", "registrations", err)
		return nil, &RemoteReadError{Op: "list", Entity: "registrations", Err: err}
	}
	if list == nil {
		list = []registration.Registration{}
	}
	return list, nil
}

// CreateRegistration normalises, validates and stores a submission.
// POST: Returns the stored record, a *registration.ValidationError, or *RemoteWriteError
func (a *Access) CreateRegistration(ctx context.Context, r registration.Registration) (registration.Registration, error) {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return registration.Registration{}, err
	}
	r.ID = a.newID()
	r.CreatedAt = a.now().UTC()

	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Registrations.Create(ctx, r); err != nil {
		return registration.Registration{}, a.writeFailed("create", entityRegistration, err)
	}
	return r, nil
}

// RemoveRegistration deletes a registration. Removing a missing id succeeds.
func (a *Access) RemoveRegistration(ctx context.Context, id string) error {
	if !isStoredID(id) {
		return nil
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Registrations.Delete(ctx, id); err != nil {
		return a.writeFailed("delete", entityRegistration, err)
	}
	return nil
}
