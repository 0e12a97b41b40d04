// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package oracle

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher - background process reloading an allow-list when its file changes
type Watcher struct {
	list    *AllowList
	watcher *fsnotify.Watcher
	file    string
}

// NewWatcher - watch the directory holding the list file
//
// the directory is watched so that editors replacing the file by
// rename are seen
func NewWatcher(list *AllowList) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	file, err := filepath.Abs(filepath.Clean(list.path))
	if nil != err {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(file)); nil != err {
		w.Close()
		return nil, err
	}

	return &Watcher{
		list:    list,
		watcher: w,
		file:    file,
	}, nil
}

// Run - process file events until shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.list.log
	log.Infof("watching: %q", w.file)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.file {
				continue loop
			}
			if !isChange(event) {
				continue loop
			}
			log.Infof("file event: %v", event)
			if err := w.list.Reload(); nil != err {
				log.Warnf("reload error: %s  keeping previous list", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watch error: %s", err)
		}
	}

	w.watcher.Close()
	log.Info("watcher stopped")
}

func isChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
