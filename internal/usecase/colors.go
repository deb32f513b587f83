package usecase

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lms-sync/internal/adapter"
	"github.com/MKhiriev/go-lms-sync/internal/color"
	"github.com/MKhiriev/go-lms-sync/internal/store"
	"github.com/MKhiriev/go-lms-sync/models"
)

// GetCustomColors mirrors the user's custom context colors.
type GetCustomColors = CollectionUseCase[models.APIContextColor, models.Color, *models.Color]

// NewGetCustomColors builds the custom colors use case.
func NewGetCustomColors(storage Storage, api adapter.API) *GetCustomColors {
	fetch := func(ctx context.Context) ([]models.APIContextColor, error) {
		colors, err := adapter.Fetch[models.APICustomColors](ctx, api, adapter.GetCustomColorsRequest{})
		if err != nil {
			return nil, err
		}
		return ContextColors(colors), nil
	}
	return NewCollectionUseCase[models.APIContextColor, models.Color, *models.Color](
		"custom_colors", storage, fetch, ColorsReconciler{},
	)
}

// ContextColors flattens the colors map into pairs ordered by context id.
func ContextColors(colors models.APICustomColors) []models.APIContextColor {
	ids := make([]string, 0, len(colors.CustomColors))
	for id := range colors.CustomColors {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	items := make([]models.APIContextColor, 0, len(ids))
	for _, id := range ids {
		items = append(items, models.APIContextColor{CanvasContextID: id, Color: colors.CustomColors[id]})
	}
	return items
}

// ColorsReconciler owns every color row.
type ColorsReconciler struct{}

func (ColorsReconciler) Scope() sq.Sqlizer {
	return nil
}

func (ColorsReconciler) ItemPredicate(item models.APIContextColor) sq.Sqlizer {
	return sq.Eq{"canvas_context_id": item.CanvasContextID}
}

func (ColorsReconciler) UpdateModel(_ context.Context, model *models.Color, item models.APIContextColor, _ *store.Tx) error {
	if item.CanvasContextID == "" {
		return ErrMissingID
	}
	model.CanvasContextID = item.CanvasContextID

	hex, err := color.Normalize(item.Color)
	if err != nil {
		return fmt.Errorf("context %s: %w", item.CanvasContextID, err)
	}
	model.Hex = hex
	return nil
}
