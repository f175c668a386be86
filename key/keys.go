// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Preview Engine - these keys tune the debounced thumbnail preview pipeline.
const (
	PreviewQuantizeSeconds = "preview.quantize_seconds"
	PreviewDebounceMs      = "preview.debounce_ms"
)

// Frame Cache - these keys bound the in-memory thumbnail cache.
const (
	CacheCapacity = "cache.capacity"
)

// Frame Capture - these keys govern rasterization of captured frames.
const (
	CaptureBackend = "capture.backend"
	CaptureWidth   = "capture.width"
	CaptureHeight  = "capture.height"
	CaptureQuality = "capture.quality"
)

// Thumbnail Store - these keys configure the persistent thumbnail registry.
const (
	StoreSaveOnCapture = "store.save_on_capture"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the scrubber's interaction parameters.
const (
	TUIStepPercent = "tui.step_percent"
	TUIJumpPercent = "tui.jump_percent"
)

// Logging - these keys control persistent diagnostic output.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Behavior - these keys configure global command-line presentation.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
