// Package content loads the idea file: one candidate post per line.
package content

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrNotFound means the idea file does not exist.
	ErrNotFound = errors.New("idea file not found")
	// ErrEmpty means the idea file exists but holds no usable lines.
	ErrEmpty = errors.New("idea file is empty")
)

// Load reads the idea file and returns its non-blank lines, trimmed, in file
// order. The order carries no meaning; the rotation engine shuffles it.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	var ideas []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ideas = append(ideas, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return ideas, nil
}
