package models

// ColorsTable is the local table holding [Color] rows.
const ColorsTable = "colors"

// Color is a user-chosen custom color for a context (course, group, user).
// Hex is stored normalized, e.g. "#ff0000" or "#80ff0000".
type Color struct {
	RowID int64

	CanvasContextID string
	Hex             string
}

func (c *Color) TableName() string {
	return ColorsTable
}

func (c *Color) Columns() []string {
	return []string{"canvas_context_id", "hex"}
}

func (c *Color) Values() []any {
	return []any{c.CanvasContextID, c.Hex}
}

func (c *Color) ScanTargets() []any {
	return []any{&c.CanvasContextID, &c.Hex}
}

func (c *Color) PrimaryKey() int64 {
	return c.RowID
}

func (c *Color) SetPrimaryKey(id int64) {
	c.RowID = id
}
