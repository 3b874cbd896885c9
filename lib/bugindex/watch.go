// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bugindex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// watchDebounce is how long the watcher waits after a change event
// before reloading, so a burst of writes produces one reload.
const watchDebounce = 50 * time.Millisecond

// Watch monitors a bug file and calls onChange with a freshly loaded
// Store whenever its content changes. current is the fingerprint of
// the snapshot the caller already holds; reloads with the same
// fingerprint are skipped.
//
// The parent directory is watched (IN_CLOSE_WRITE | IN_MOVED_TO)
// rather than the file itself, so editors and exporters that write a
// temporary file and rename it over the original are noticed. A
// reload that fails to read, decode or validate is logged at warn
// level and the previous snapshot stays in effect.
//
// onChange runs on the watcher goroutine. The returned stop function
// ends the watch and is safe to call more than once.
func Watch(path string, current Fingerprint, logger *slog.Logger, onChange func(*Store)) (func(), error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, _, err := DetectPath(absolutePath); err != nil {
		return nil, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if _, err := unix.InotifyAddWatch(fd, filepath.Dir(absolutePath), unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, err
	}

	watcher := &fileWatcher{
		fd:       fd,
		path:     absolutePath,
		filename: filepath.Base(absolutePath),
		previous: current,
		logger:   logger.With("path", absolutePath),
		onChange: onChange,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.loop()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(watcher.stop)
			<-watcher.done
		})
	}, nil
}

type fileWatcher struct {
	fd       int
	path     string
	filename string
	previous Fingerprint
	logger   *slog.Logger
	onChange func(*Store)
	stop     chan struct{}
	done     chan struct{}
}

// loop polls the inotify descriptor with a 100ms timeout so the stop
// channel is checked promptly.
func (watcher *fileWatcher) loop() {
	defer close(watcher.done)
	defer unix.Close(watcher.fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-watcher.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(watcher.fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, 100)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			watcher.logger.Error("bug file watch stopped", "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(watcher.fd, buffer)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			watcher.logger.Error("bug file watch stopped", "error", err)
			return
		}
		if !inotifyMatchesFile(buffer[:bytesRead], watcher.filename) {
			continue
		}

		time.Sleep(watchDebounce)
		drainInotify(watcher.fd, buffer)
		watcher.reload()
	}
}

func (watcher *fileWatcher) reload() {
	store, err := LoadFile(watcher.path)
	if err != nil {
		watcher.logger.Warn("bug file reload failed, keeping previous snapshot", "error", err)
		return
	}
	if store.Fingerprint() == watcher.previous {
		watcher.logger.Debug("bug file rewritten without changes")
		return
	}
	watcher.previous = store.Fingerprint()
	watcher.logger.Info("bug file reloaded",
		"bugs", store.Len(),
		"fingerprint", store.Fingerprint().Short(),
	)
	watcher.onChange(store)
}

// inotifyMatchesFile reports whether any event in buffer names the
// target file. Event layout from inotify(7): wd int32, mask uint32,
// cookie uint32, len uint32, then len bytes of NUL-padded name.
func inotifyMatchesFile(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		eventSize := unix.SizeofInotifyEvent + nameLength
		if offset+eventSize > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := buffer[offset+unix.SizeofInotifyEvent : offset+eventSize]
			if end := bytes.IndexByte(name, 0); end >= 0 {
				name = name[:end]
			}
			if string(name) == filename {
				return true
			}
		}
		offset += eventSize
	}
	return false
}

// drainInotify discards queued events after the debounce window.
func drainInotify(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
