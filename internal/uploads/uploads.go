package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// ErrUnsupportedType is returned for files outside the allowed extensions.
var ErrUnsupportedType = fmt.Errorf("unsupported file type, allowed: png, jpg, jpeg, pdf")

// Saver writes invoice attachments under a configured directory and returns
// the URL path they are served from.
type Saver struct {
	dir string
}

// NewSaver builds a Saver rooted at dir.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// Save stores the uploaded file under a collision-free generated name.
func (s *Saver) Save(prefix string, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s%s", prefix, time.Now().UTC().Format("20060102150405"), uuid.New().String()[:8], ext)

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/static/uploads/" + name, nil
}
