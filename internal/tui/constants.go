package tui

// UI layout constants
const (
	// Modal dimensions
	ModalWidth        = 60 // Preferred modal width
	ModalWidthMargin  = 6  // Horizontal margin when the terminal is narrower
	ModalHeightMargin = 3  // Vertical margin

	// Panel layout
	PanelBorderWidth     = 2  // Width consumed by borders
	CategoryPanelWidth   = 28 // Width of the category list in the redact view
	MainViewHeightOffset = 2  // Status bar + help line
	MinInputHeight       = 5  // Smallest textarea height
	OutputHeightRatio    = 0.5

	// Input limits
	MaxInputLength    = 200000 // Characters accepted by the text areas
	MaxCategoryLength = 64     // Characters accepted for a custom category
)
