package credential

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erp/pos/internal/domain/identity"
	"go.uber.org/zap"
)

// FileStore keeps credentials in a plaintext file, one "username,password"
// record per line. Fields use CSV quoting so commas and quotes round-trip.
type FileStore struct {
	path   string
	logger *zap.Logger
}

var _ identity.CredentialRepository = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path. The file is created
// on the first Append.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path
func (s *FileStore) Path() string {
	return s.path
}

// FindAll reads every record in file order. A missing file is reported as
// identity.ErrStoreNotFound; a line without exactly two fields is an error.
func (s *FileStore) FindAll(ctx context.Context) ([]identity.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", identity.ErrStoreNotFound, err)
		}
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var creds []identity.Credential
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read credential store %s: %w", s.path, err)
		}
		if len(record) != 2 {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("read credential store %s: line %d has %d fields, want 2", s.path, line, len(record))
		}
		creds = append(creds, identity.Credential{Username: record[0], Password: record[1]})
	}

	s.logger.Debug("Credential store read", zap.String("path", s.path), zap.Int("records", len(creds)))
	return creds, nil
}

// Append writes one record at the end of the file, creating it with 0600
// permissions when needed.
func (s *FileStore) Append(ctx context.Context, c identity.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create credential store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	if err := ensureTrailingNewline(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("append credential: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{c.Username, c.Password}); err != nil {
		_ = f.Close()
		return fmt.Errorf("append credential: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("append credential: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close credential store: %w", err)
	}

	s.logger.Info("Credential appended", zap.String("path", s.path), zap.String("username", c.Username))
	return nil
}

// ensureTrailingNewline keeps a hand-edited file without a final newline from
// merging its last record with the new one.
func ensureTrailingNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}
