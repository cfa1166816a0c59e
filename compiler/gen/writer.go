package gen

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Metrics tracks generation performance.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	WriteTime      time.Duration
}

func joinLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// postprocess runs the target's source postprocessor. On failure the
// unprocessed unit is written to <file>.error for debugging and the
// render fails; nothing is written at the final path.
func postprocess(t Target, dir, file string, src []byte) ([]byte, error) {
	out, err := t.Postprocess(src)
	if err != nil {
		debugPath := filepath.Join(dir, file+".error")
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return nil, NewRenderError(t.Name(), "postprocess", file, "unprocessed unit written to "+debugPath, err)
	}
	return out, nil
}

// writeUnit writes a fully rendered unit below dir, creating parent
// directories as needed. The write is staged through a temporary file
// and renamed into place, so readers never observe a half-written unit.
func writeUnit(dir, file string, src []byte) error {
	fullPath := filepath.Join(dir, file)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), "."+filepath.Base(file)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fullPath)
}
