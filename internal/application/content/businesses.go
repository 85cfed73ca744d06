package content

import (
	"context"

	"kingdomstudio/internal/domain/business"
)

const entityBusiness = "business"

// ListBusinesses returns every business, newest first, or an empty list
// when the store cannot be read.
// POST: never nil
func (a *Access) ListBusinesses(ctx context.Context) []business.Business {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	list, err := a.stores.Businesses.List(ctx)
	if err != nil {
		a.readFailed("list", "businesses", err)
		return []business.Business{}
	}
	if list == nil {
		list = []business.Business{}
	}
	return list
}

// CreateBusiness assigns an id and creation time and stores b.
// PRE: b carries no id
// POST: Returns the stored record, a validation error, or *RemoteWriteError
func (a *Access) CreateBusiness(ctx context.Context, b business.Business) (business.Business, error) {
	if err := b.Validate(); err != nil {
		return business.Business{}, err
	}
	b.ID = a.newID()
	b.CreatedAt = a.now().UTC()

	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Businesses.Create(ctx, b); err != nil {
		return business.Business{}, a.writeFailed("create", entityBusiness, err)
	}
	return b, nil
}

// UpdateBusiness applies a partial update. An empty patch or an id that
// names no row does nothing.
func (a *Access) UpdateBusiness(ctx context.Context, id string, patch business.Patch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if !isStoredID(id) {
		return nil
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Businesses.Update(ctx, id, patch); err != nil {
		return a.writeFailed("update", entityBusiness, err)
	}
	return nil
}

// RemoveBusiness deletes a business. Removing a missing id succeeds.
func (a *Access) RemoveBusiness(ctx context.Context, id string) error {
	if !isStoredID(id) {
		return nil
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Businesses.Delete(ctx, id); err != nil {
		return a.writeFailed("delete", entityBusiness, err)
	}
	return nil
}
