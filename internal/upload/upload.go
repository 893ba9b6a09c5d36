package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded images to a local directory and hands back the URL
// path they are served under.
type Store struct {
	Dir string
}

func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	if file.Size == 0 {
		return "", errors.New("image file is empty")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// uuid prefix keeps concurrent uploads of the same filename apart.
	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return "/uploads/" + name, nil
}
