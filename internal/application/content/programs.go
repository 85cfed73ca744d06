package content

import (
	"context"

	"go.uber.org/zap"

	"kingdomstudio/internal/domain/program"
)

const entityProgram = "program"

// ListPrograms returns the stored programs ordered by id, or an empty
// list when the store cannot be read. Callers substitute the canonical
// defaults for an empty result.
func (a *Access) ListPrograms(ctx context.Context) []program.Program {
	list, _ := a.LoadPrograms(ctx)
	return list
}

// LoadPrograms is ListPrograms with the read failure reported, so a
// caller can tell an empty table from an unreadable one.
// POST: Returns a non-nil list; on failure it is empty and err is *RemoteReadError
func (a *Access) LoadPrograms(ctx context.Context) ([]program.Program, error) {
	ctx, cancel := a.bound(ctx)
	defer cancel()

	list, err := a.stores.Programs.List(ctx)
	if err != nil {
		a.readFailed("list", "programs", err)
		return []program.Program{}, &RemoteReadError{Op: "list", Entity: "programs", Err: err}
	}
	if list == nil {
		return []program.Program{}, nil
	}
	return list, nil
}

// UpdateProgram applies a partial update to one of the canonical programs.
// PRE: id is canonical
// POST: Returns program.ErrUnknownProgram for other ids, before any remote call
func (a *Access) UpdateProgram(ctx context.Context, id string, patch program.Patch) error {
	if !program.IsCanonicalID(id) {
		return program.ErrUnknownProgram
	}
	if patch.IsEmpty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Programs.Update(ctx, id, patch); err != nil {
		return a.writeFailed("update", entityProgram, err)
	}
	return nil
}

// SeedDefaultPrograms writes the three canonical programs in one call,
// leaving any existing row untouched.
func (a *Access) SeedDefaultPrograms(ctx context.Context) error {
	ctx, cancel := a.bound(ctx)
	defer cancel()
	if err := a.stores.Programs.InsertMissing(ctx, program.Defaults()); err != nil {
		return a.writeFailed("seed", "programs", err)
	}
	a.logger.Info("seed_event", zap.String("event", "programs_seeded"), zap.Int("programs", len(program.CanonicalIDs)))
	return nil
}
