package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileStorage keeps uploads on local disk for the lifetime of one request.
type FileStorage interface {
	Stage(originalName string, data io.Reader) (string, error)
	Remove(path string) error
	Exists(path string) bool
	Sweep(olderThan time.Duration) (int, error)
}

type fileStorage struct {
	basePath string
	newToken func() string
	now      func() time.Time
}

func NewFileStorage(basePath string) FileStorage {
	return &fileStorage{
		basePath: basePath,
		newToken: NewUniqueToken,
		now:      time.Now,
	}
}

// NewUniqueToken combines a nanosecond timestamp with a random UUID so two
// uploads of the same name never share a path.
func NewUniqueToken() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + uuid.New().String()
}

// StagedName maps an original upload name and a uniqueness token to the
// staged file name. Directory components of originalName are dropped.
func StagedName(originalName, token string) string {
	name := filepath.Base(strings.ReplaceAll(originalName, `\`, "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		name = "upload"
	}
	return token + "-" + name
}

func (s *fileStorage) Stage(originalName string, data io.Reader) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	fullPath := filepath.Join(s.basePath, StagedName(originalName, s.newToken()))

	// O_EXCL: a colliding name fails instead of sharing another request's file
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write staged file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close staged file: %w", err)
	}

	return fullPath, nil
}

func (s *fileStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *fileStorage) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// Sweep deletes staged files last modified before now-olderThan and returns
// how many were removed.
func (s *fileStorage) Sweep(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := s.now().Add(-olderThan)
	removed := 0
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// removed by its request between ReadDir and Info
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := s.Remove(filepath.Join(s.basePath, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
