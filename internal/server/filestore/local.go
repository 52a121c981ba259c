package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// LocalStore reads keystore containers from a directory tree.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) *LocalStore {
	return &LocalStore{basePath: basePath}
}

func (s *LocalStore) Fetch(_ context.Context, userID int64, fileName string) ([]byte, error) {
	// filepath.Base guards against traversal in stored file names
	path := filepath.Join(s.basePath, strconv.FormatInt(userID, 10), filepath.Base(fileName))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keystore file: %w", err)
	}

	return data, nil
}
