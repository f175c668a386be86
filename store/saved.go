package store

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/framepeek-cli/framepeek/util"
)

// SavedThumbnail is a single persisted thumbnail record.
type SavedThumbnail struct {
	Target string  `json:"target"`
	Time   float64 `json:"time"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Size   int     `json:"size"`
	Path   string  `json:"path"`
}

func (s *SavedThumbnail) encode() string {
	return s.Target + "@" + strconv.FormatFloat(s.Time, 'f', -1, 64)
}

func (s *SavedThumbnail) String() string {
	return fmt.Sprintf("%s at %s", filepath.Base(s.Target), util.FormatTimestamp(s.Time))
}
