package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// maxLineBytes bounds a single zerolog entry; request logs carry at most a
// truncated response body, so real lines stay far below it.
const maxLineBytes = 1 << 20

// Read returns the last maxLines entries of songmatch's JSON log file, oldest
// first. A log file that does not exist yet is reported as empty.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	// tail keeps at most 2*maxLines entries and compacts when full.
	tail := make([]string, 0, 2*maxLines)
	for scanner.Scan() {
		if len(tail) == cap(tail) {
			tail = append(tail[:0], tail[len(tail)-maxLines+1:]...)
		}
		tail = append(tail, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if len(tail) > maxLines {
		tail = tail[len(tail)-maxLines:]
	}
	lines := make([]string, len(tail))
	copy(lines, tail)
	return lines, nil
}
