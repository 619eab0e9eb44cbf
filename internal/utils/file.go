package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadImageList reads image paths from a manifest file, one per line. A line
// that is a comma separated record with exactly three fields contributes its
// third field; any other line is taken as a bare path.
func ReadImageList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image list: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, ",")
		if len(fields) == 3 {
			paths = append(paths, fields[2])
		} else {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image list: %w", err)
	}

	return paths, nil
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}
