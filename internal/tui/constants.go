package tui

// UI Layout Constants

const (
	// Fallback size before the first WindowSizeMsg
	DefaultWidth  = 80
	DefaultHeight = 24

	// Thumbnail bounds in terminal cells
	ThumbnailMaxCols = 64
	ThumbnailMaxRows = 18
	ThumbnailMinCols = 16
	ThumbnailMinRows = 4

	// Lines used by everything on the main screen except the thumbnail
	MainChromeLines = 18

	// Lines used by the activity view header and footer
	ActivityChromeLines = 5

	// FieldLabelWidth aligns form labels
	FieldLabelWidth = 12

	// ActivityLimit is how many entries the activity view loads
	ActivityLimit = 50
)
