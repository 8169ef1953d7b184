// Package controlport reads the file written by tor when it is run
// using the --ControlPortWriteToFile option.
package controlport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/ooni/torbridge/internal/model"
)

// ErrNoControlPort indicates that the file does not contain a PORT= line.
var ErrNoControlPort = errors.New("controlport: no PORT= line")

// Parse returns the control port address in a file written by tor, which
// contains lines like `PORT=127.0.0.1:9051`.
func Parse(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if address, found := strings.CutPrefix(line, "PORT="); found && address != "" {
			return address, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", ErrNoControlPort
}

// Read reads and parses the file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Parse(data)
}

// Wait blocks until tor writes a valid control port into the file at path or
// ctx is done. The file may not exist yet or be empty when we start waiting.
func Wait(ctx context.Context, path string, logger model.Logger) (string, error) {
	logger = model.ValidLoggerOrDefault(logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", err
	}
	defer watcher.Close()

	// tor writes a temporary file and renames it, so we watch the directory
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return "", err
	}

	// the file may have been written before we started watching
	if address, err := Read(path); err == nil {
		return address, nil
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case err, good := <-watcher.Errors:
			if !good {
				return "", fmt.Errorf("controlport: watcher closed: %w", ErrNoControlPort)
			}
			return "", err

		case ev, good := <-watcher.Events:
			if !good {
				return "", fmt.Errorf("controlport: watcher closed: %w", ErrNoControlPort)
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			address, err := Read(path)
			if err != nil {
				logger.Debugf("controlport: %s: %s", path, err.Error())
				continue
			}
			logger.Infof("controlport: tor is listening at %s", address)
			return address, nil
		}
	}
}
