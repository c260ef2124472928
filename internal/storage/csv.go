// Package storage reads and writes the task collection as rows of a CSV file.
//
// The whole file is read on every call and rewritten on every write. There
// is no append path and no partial-write protection: a failure in the middle
// of WriteAll can leave a truncated file.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Headers is the fixed header row of the task file.
var Headers = []string{"id", "name", "finished", "created_at"}

// Row maps a header field name to its raw string value.
type Row map[string]string

// Store is a CSV-backed row store rooted at a single file.
type Store struct {
	fs      afero.Fs
	path    string
	headers []string
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads and file creation.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store for the file at path. headers defines the column order
// used when the file is created or rewritten.
func New(fs afero.Fs, path string, headers []string, opts ...Option) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if len(headers) == 0 {
		headers = Headers
	}
	s := &Store{
		fs:      fs,
		path:    path,
		headers: append([]string(nil), headers...),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureExists creates the containing directory and, if the data file is
// missing, a file holding only the header row. It is safe to call repeatedly.
func (s *Store) EnsureExists() error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("stat data file: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.write(nil); err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	s.logger.Info("created data file", "path", s.path)
	return nil
}

// ReadAll returns every data row in file order. Field names are taken from
// the file's own header row. A file that cannot be opened reads as empty.
// Parse errors are *csv.ParseError values carrying the file line. A CR
// inside a quoted field reads back as LF.
func (s *Store) ReadAll() ([]Row, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		s.logger.Warn("data file unreadable, treating as empty", "path", s.path, "err", err)
		return []Row{}, nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := []Row{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rows: %w", err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	s.logger.Debug("read rows", "path", s.path, "rows", len(rows))
	return rows, nil
}

// WriteAll truncates the file and writes the header followed by rows in the
// given order.
func (s *Store) WriteAll(rows []Row) error {
	if err := s.EnsureExists(); err != nil {
		return err
	}
	if err := s.checkFields(rows); err != nil {
		return err
	}
	if err := s.write(rows); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	s.logger.Debug("wrote rows", "path", s.path, "rows", len(rows))
	return nil
}

// checkFields rejects rows carrying keys outside the header.
func (s *Store) checkFields(rows []Row) error {
	known := make(map[string]bool, len(s.headers))
	for _, h := range s.headers {
		known[h] = true
	}
	for i, row := range rows {
		for key := range row {
			if !known[key] {
				return fmt.Errorf("row %d: unknown field %q", i+1, key)
			}
		}
	}
	return nil
}

func (s *Store) write(rows []Row) error {
	f, err := s.fs.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.Write(s.headers); err != nil {
		f.Close()
		return err
	}
	record := make([]string, len(s.headers))
	for _, row := range rows {
		for i, h := range s.headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
