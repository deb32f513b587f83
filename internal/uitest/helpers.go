// Package uitest runs the helper actions a UI-test driver asks the app to
// perform through the debug bridge.
package uitest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-lms-sync/internal/logger"
	"github.com/MKhiriev/go-lms-sync/internal/service"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

var (
	ErrUnknownHelper = errors.New("unknown helper")
	ErrUnknownTable  = errors.New("unknown table")
	ErrBadArguments  = errors.New("bad helper arguments")
)

// countableTables are the tables the count helper may read.
var countableTables = map[string]struct{}{
	models.CoursesTable:     {},
	models.AssignmentsTable: {},
	models.QuizzesTable:     {},
	models.ColorsTable:      {},
}

// Result is the JSON reply of every helper.
type Result struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Helpers executes helpers against the app's store and sync service.
type Helpers struct {
	db   *store.DB
	sync service.SyncService
}

// NewHelpers creates the helper runner.
func NewHelpers(db *store.DB, sync service.SyncService) *Helpers {
	return &Helpers{db: db, sync: sync}
}

// Run executes helper and returns its encoded [Result].
func (h *Helpers) Run(ctx context.Context, helper models.Helper) []byte {
	log := logger.FromContext(ctx)

	data, err := h.run(ctx, helper)
	result := Result{OK: err == nil, Data: data}
	if err != nil {
		log.Err(err).Str("func", "Helpers.Run").Str("helper", string(helper.Name)).Msg("helper failed")
		result.Error = err.Error()
	}

	reply, err := json.Marshal(result)
	if err != nil {
		log.Err(err).Str("func", "Helpers.Run").Msg("failed to encode helper result")
		return nil
	}
	return reply
}

func (h *Helpers) run(ctx context.Context, helper models.Helper) (json.RawMessage, error) {
	switch helper.Name {
	case models.HelperPing:
		return nil, nil
	case models.HelperReset:
		return nil, h.db.Reset(ctx)
	case models.HelperSync:
		return h.fullSync(ctx)
	case models.HelperCount:
		return h.count(ctx, helper.Args)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHelper, helper.Name)
	}
}

func (h *Helpers) fullSync(ctx context.Context) (json.RawMessage, error) {
	report, err := h.sync.FullSync(ctx)

	summary := models.SyncSummary{Passes: report.Passes}
	for _, itemErr := range report.ItemErrors {
		summary.ItemErrors = append(summary.ItemErrors, itemErr.Error())
	}
	data, encErr := json.Marshal(summary)
	if encErr != nil {
		return nil, encErr
	}
	return data, err
}

func (h *Helpers) count(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
	var args models.CountArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArguments, err)
	}
	if _, ok := countableTables[args.Table]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, args.Table)
	}

	n, err := store.Count(ctx, h.db, args.Table, nil)
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.CountResult{Table: args.Table, Count: n})
}
