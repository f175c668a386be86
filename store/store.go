// Package store persists captured thumbnails beyond the lifetime of the
// in-memory preview cache.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/framepeek-cli/framepeek/capture"
	"github.com/framepeek-cli/framepeek/filesystem"
	"github.com/framepeek-cli/framepeek/util"
	"github.com/framepeek-cli/framepeek/where"
	"github.com/metafates/gache"
)

// cacher provides an abstracted, disk-backed index of saved thumbnails.
var cacher = gache.New[map[string]*SavedThumbnail](
	&gache.Options{
		Path:       where.Store(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// All returns the complete collection of saved thumbnail records.
func All() (map[string]*SavedThumbnail, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}

	if expired || cached == nil {
		return make(map[string]*SavedThumbnail), nil
	}

	return cached, nil
}

// Save copies a captured thumbnail into the thumbnails directory and records
// it in the index. Saving the same target and time again overwrites the
// previous record.
func (s *SavedThumbnail) save(handle *capture.Handle) error {
	saved, err := All()
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(s.Path, handle.Bytes(), 0644); err != nil {
		return err
	}

	saved[s.encode()] = s

	return cacher.Set(saved)
}

// Find looks up the saved record for a media target and playback time.
func Find(target string, seconds float64) (*SavedThumbnail, error) {
	saved, err := All()
	if err != nil {
		return nil, err
	}

	lookup := SavedThumbnail{Target: target, Time: seconds}

	record, ok := saved[lookup.encode()]
	if !ok {
		return nil, fmt.Errorf("no saved thumbnail for %s", lookup.String())
	}

	return record, nil
}

// Save persists the thumbnail held by handle for the given media target and
// playback time, returning the durable record.
func Save(handle *capture.Handle, target string, seconds float64) (*SavedThumbnail, error) {
	stem := util.SanitizeFilename(util.FileStem(target))
	if stem == "" {
		stem = "frame"
	}

	width, height := handle.Size()

	record := &SavedThumbnail{
		Target: target,
		Time:   seconds,
		Width:  width,
		Height: height,
		Size:   len(handle.Bytes()),
		Path:   filepath.Join(where.Thumbnails(), fmt.Sprintf("%s_%dms.jpg", stem, int64(seconds*1000))),
	}

	if err := record.save(handle); err != nil {
		return nil, err
	}

	return record, nil
}

// Remove deletes a saved thumbnail record and its backing file.
func Remove(record *SavedThumbnail) error {
	saved, err := All()
	if err != nil {
		return err
	}

	delete(saved, record.encode())

	if err := filesystem.API().Remove(record.Path); err != nil {
		return err
	}

	return cacher.Set(saved)
}
