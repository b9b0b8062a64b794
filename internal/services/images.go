package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Ritesh010/admin/internal/models"
)

// ImageFile is one pending image: raw bytes plus the declared filename and
// MIME type.
type ImageFile struct {
	Name string
	MIME string
	Data []byte
}

func (f ImageFile) Size() int { return len(f.Data) }

// RejectionError reports a file the set refused: wrong type or duplicate.
// The file is skipped, the rest of the batch continues.
type RejectionError struct {
	Name   string
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%q %s", e.Name, e.Reason)
}

// PendingImageSet is the ordered, index-addressable list of images selected
// but not yet uploaded. Indices are stable identifiers between mutations:
// every removal shifts later entries down, so positions stay contiguous.
// No two entries share both name and size. Concurrent requests for the same
// session share one set, so every access goes through the lock.
type PendingImageSet struct {
	mu     sync.RWMutex
	files  []ImageFile
	logger zerolog.Logger
}

func NewPendingImageSet(logger zerolog.Logger) *PendingImageSet {
	return &PendingImageSet{logger: logger}
}

// Add appends a file, rejecting non-images and duplicates (same name and
// same size). Rejections are user-visible but never fatal.
func (s *PendingImageSet) Add(file ImageFile) error {
	if !strings.HasPrefix(file.MIME, "image/") {
		return &RejectionError{Name: file.Name, Reason: "is not an image and will be skipped"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.files {
		if existing.Name == file.Name && existing.Size() == file.Size() {
			return &RejectionError{Name: file.Name, Reason: "is already selected"}
		}
	}

	s.files = append(s.files, file)
	return nil
}

// Remove deletes the entry at index; later entries shift down by one.
func (s *PendingImageSet) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.files) {
		return fmt.Errorf("image index %d out of range", index)
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
	return nil
}

func (s *PendingImageSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

func (s *PendingImageSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Files returns a snapshot of the pending files in order.
func (s *PendingImageSet) Files() []ImageFile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ImageFile, len(s.files))
	copy(out, s.files)
	return out
}

var dataURLHeader = regexp.MustCompile(`^data:([^;,]+)`)

// RestoreFromBuffers rebuilds pending files from previously stored image
// records when editing a product. Each buffer's bytes must be a data URL
// with an image marker; anything else is logged and skipped. Restored files
// go through Add so deduplication applies uniformly. Returns how many were
// added.
func (s *PendingImageSet) RestoreFromBuffers(buffers []models.ProductImage) int {
	added := 0

	for i, buf := range buffers {
		file, err := decodeStoredImage(buf.ImageURL.Data, i)
		if err != nil {
			s.logger.Warn().Err(err).Int("index", i).Msg("Skipping stored image buffer")
			continue
		}

		if err := s.Add(file); err != nil {
			s.logger.Warn().Err(err).Int("index", i).Msg("Stored image rejected")
			continue
		}
		added++
	}

	return added
}

// decodeStoredImage turns one stored buffer (the UTF-8 text of a data URL)
// back into a file. The extension comes from the MIME type; the name is
// synthetic since the original filename is not stored.
func decodeStoredImage(data []byte, index int) (ImageFile, error) {
	dataURL := string(data)

	if !strings.HasPrefix(dataURL, "data:image/") {
		return ImageFile{}, fmt.Errorf("buffer %d is not an image", index)
	}

	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return ImageFile{}, fmt.Errorf("buffer %d has no payload", index)
	}

	match := dataURLHeader.FindStringSubmatch(header)
	if match == nil {
		return ImageFile{}, fmt.Errorf("buffer %d has a malformed header", index)
	}
	mimeType := match[1]
	extension := mimeType[strings.Index(mimeType, "/")+1:]

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageFile{}, fmt.Errorf("decoding buffer %d: %w", index, err)
	}

	return ImageFile{
		Name: fmt.Sprintf("existing_image_%d.%s", index+1, extension),
		MIME: mimeType,
		Data: decoded,
	}, nil
}

// BuildUploadPayload converts every pending file into a self-describing
// upload record, one goroutine per file, awaited jointly. The first file is
// always primary regardless of any prior designation; sort order follows the
// selection order. One failing conversion aborts the whole batch.
func (s *PendingImageSet) BuildUploadPayload(ctx context.Context) ([]models.ImageUpload, error) {
	files := s.Files()
	if len(files) == 0 {
		return nil, fmt.Errorf("no images selected")
	}

	images := make([]models.ImageUpload, len(files))
	g, _ := errgroup.WithContext(ctx)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			record, err := encodeUploadRecord(file, i)
			if err != nil {
				return err
			}
			images[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("preparing images for upload: %w", err)
	}

	return images, nil
}

func encodeUploadRecord(file ImageFile, index int) (models.ImageUpload, error) {
	if len(file.Data) == 0 {
		return models.ImageUpload{}, fmt.Errorf("file %q is empty", file.Name)
	}
	if file.MIME == "" {
		return models.ImageUpload{}, fmt.Errorf("file %q has no content type", file.Name)
	}

	encoded := base64.StdEncoding.EncodeToString(file.Data)
	return models.ImageUpload{
		ImageURL:  fmt.Sprintf("data:%s;base64,%s", file.MIME, encoded),
		AltText:   file.Name,
		IsPrimary: index == 0,
		SortOrder: index + 1,
	}, nil
}
