package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// OutputPrefix starts the name of every output root.
const OutputPrefix = "_arch_"

const maxAllocAttempts = 8

// AllocateOutputRoot creates a new, empty directory under parent named
// OutputPrefix plus a random suffix. os.Mkdir fails on existing paths, so an
// existing directory is never reused.
func AllocateOutputRoot(parent string) (string, error) {
	for attempt := 0; attempt < maxAllocAttempts; attempt++ {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		dir := filepath.Join(parent, OutputPrefix+suffix)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return "", fmt.Errorf("create output root: %w", err)
	}
	return "", fmt.Errorf("create output root: no free name under %s after %d attempts", parent, maxAllocAttempts)
}
