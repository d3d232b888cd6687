package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// makefileChangedMsg signals that the watched Makefile was written or
// recreated on disk.
type makefileChangedMsg struct{}

// watchMakefile starts an fsnotify watcher on path and returns a tea.Cmd
// that blocks until the first write/create event, then resolves to
// makefileChangedMsg. A watcher that fails to start degrades silently —
// the session still works, just without auto-reload.
func watchMakefile(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return nil
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil
		}
		defer watcher.Close()

		if err := watcher.Add(path); err != nil {
			return nil
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return makefileChangedMsg{}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}
