package config

// Layout constants.
const (
	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// TargetProgressWidth is the preferred width of the timer bar.
	TargetProgressWidth = 30

	// MinProgressWidth is the narrowest the timer bar may shrink to.
	MinProgressWidth = 10

	// BodyWrapWidth caps the instruction paragraph line length.
	BodyWrapWidth = 76
)

// Display limits.
const (
	// MaxVisibleResults limits browser matches shown before scrolling.
	MaxVisibleResults = 12

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "…"
)

// Input constraints.
const (
	// ClockInputLimit fits "HH:MM".
	ClockInputLimit = 5

	// SearchInputWidth is the browser search box width.
	SearchInputWidth = 30
)
