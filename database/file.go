package database

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"railway-reservation/model"
)

// FileStore keeps each collection in its own comma-delimited file.
type FileStore struct {
	TrainsPath   string
	BookingsPath string
}

func NewFileStore(dir, trainsFile, bookingsFile string) *FileStore {
	return &FileStore{
		TrainsPath:   filepath.Join(dir, trainsFile),
		BookingsPath: filepath.Join(dir, bookingsFile),
	}
}

func (s *FileStore) LoadTrains(ctx context.Context) ([]model.Train, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.TrainsPath)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Train{}, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeTrains(f, s.TrainsPath)
}

func (s *FileStore) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.BookingsPath)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Booking{}, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeBookings(f, s.BookingsPath)
}

func (s *FileStore) SaveTrains(ctx context.Context, trains []model.Train) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return replaceFile(s.TrainsPath, func(w io.Writer) error {
		return EncodeTrains(w, trains)
	})
}

func (s *FileStore) SaveBookings(ctx context.Context, bookings []model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return replaceFile(s.BookingsPath, func(w io.Writer) error {
		return EncodeBookings(w, bookings)
	})
}

// replaceFile writes a sibling temp file and renames it over path, so readers
// see either the old snapshot or the new one, never a truncated file.
func replaceFile(path string, encode func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = encode(w); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
