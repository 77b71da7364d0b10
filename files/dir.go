package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultGracePeriod bounds how long a failed save may leave its staging
// file behind.
const DefaultGracePeriod = 5 * time.Second

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// DirSource reads receipt images (PNG/JPEG) from a directory, sorted by
// filename. An existing but empty directory yields an empty slice, not an
// error.
type DirSource struct {
	Dir string
}

func (s *DirSource) Files(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.Dir, err)
	}

	var out []File
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		out = append(out, File{Name: e.Name(), Data: data})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DirSink writes artifacts into a directory. Data is staged in a hidden
// .part file and renamed into place so readers never observe partial writes;
// a staging file orphaned by a failed rename is removed after GracePeriod.
type DirSink struct {
	Dir string
	// GracePeriod overrides DefaultGracePeriod when positive.
	GracePeriod time.Duration
}

func (s *DirSink) Save(ctx context.Context, name string, data []byte, mimeType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create sink dir: %w", err)
	}

	base := filepath.Base(name)
	tmp, err := os.CreateTemp(s.Dir, "."+base+"-*.part")
	if err != nil {
		return fmt.Errorf("stage %s: %w", base, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.releaseLater(tmpName)
		return fmt.Errorf("write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		s.releaseLater(tmpName)
		return fmt.Errorf("close %s: %w", base, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.Dir, base)); err != nil {
		s.releaseLater(tmpName)
		return fmt.Errorf("publish %s: %w", base, err)
	}
	return nil
}

// releaseLater removes a staging file after the grace period without
// blocking the caller.
func (s *DirSink) releaseLater(path string) {
	grace := s.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	time.AfterFunc(grace, func() { os.Remove(path) })
}
