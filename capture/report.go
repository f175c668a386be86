package capture

// Report is the machine-readable record of a one-shot capture, emitted by the
// CLI in JSON mode and described by the generated schema.
type Report struct {
	Target        string  `json:"target" jsonschema:"description=Media target the frame was captured from."`
	RequestedTime float64 `json:"requested_time" jsonschema:"description=Playback time requested by the caller, in seconds."`
	QuantizedTime float64 `json:"quantized_time" jsonschema:"description=Bucketed playback time the frame was actually captured at, in seconds."`
	Width         int     `json:"width" jsonschema:"description=Pixel width of the rasterized frame."`
	Height        int     `json:"height" jsonschema:"description=Pixel height of the rasterized frame."`
	SizeBytes     int     `json:"size_bytes" jsonschema:"description=Encoded JPEG payload size in bytes."`
	Path          string  `json:"path" jsonschema:"description=Filesystem location of the produced thumbnail."`
	Stored        bool    `json:"stored" jsonschema:"description=Whether the thumbnail was persisted to the localized store."`
}
