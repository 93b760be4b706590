package main

import (
	"context"

	"nichefold/internal/workspace"
	"nichefold/pkg/history"
)

// historyRecorder stores finished builds in the local history database.
type historyRecorder struct {
	db *history.HistoryDB
}

func (r *historyRecorder) Record(ctx context.Context, req workspace.Request, res *workspace.Result) error {
	_, err := r.db.Record(ctx, entryFor(req, res))
	return err
}

func entryFor(req workspace.Request, res *workspace.Result) history.Entry {
	e := history.Entry{
		Client:    req.ClientName,
		NicheCode: req.Niche.Code,
		NicheName: req.Niche.Name,
	}
	if res != nil {
		e.Root = res.Root
		e.Directories = len(res.Directories)
		e.FilesCreated = res.FilesCreated
		e.FilesSkipped = res.FilesSkipped
	}
	return e
}
