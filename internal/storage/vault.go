// Package storage holds schedbot's file-backed layers: the vault scanner
// that reads task lines from markdown documents, and the settings store that
// persists runtime configuration in config.yml.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minhokang/schedbot/internal/core"
	"github.com/minhokang/schedbot/internal/observability"
	"github.com/minhokang/schedbot/pkg/models"
)

// VaultScanner reads every markdown document in the todo directory and
// returns the parsed task records, each tagged with its document's base name.
type VaultScanner interface {
	ScanTasks() ([]models.Task, error)
}

// fileVaultScanner implements VaultScanner over a plain directory of *.md
// files. Unreadable documents are logged and skipped; a missing directory
// yields an empty collection.
type fileVaultScanner struct {
	todoPath string
	events   observability.EventLog // optional
}

// NewVaultScanner creates a VaultScanner rooted at todoPath. events may be
// nil to disable read-failure logging.
func NewVaultScanner(todoPath string, events observability.EventLog) VaultScanner {
	return &fileVaultScanner{todoPath: todoPath, events: events}
}

// ScanTasks walks the todo directory and parses every line of every *.md
// document. A single unreadable document never aborts the scan.
func (s *fileVaultScanner) ScanTasks() ([]models.Task, error) {
	entries, err := os.ReadDir(s.todoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tasks []models.Task
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}

		data, readErr := os.ReadFile(filepath.Join(s.todoPath, entry.Name()))
		if readErr != nil {
			s.logReadFailure(entry.Name(), readErr)
			continue
		}

		source := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		for _, line := range strings.Split(string(data), "\n") {
			if task := core.ParseTask(strings.TrimRight(line, "\r"), source); task != nil {
				tasks = append(tasks, *task)
			}
		}
	}
	return tasks, nil
}

func (s *fileVaultScanner) logReadFailure(name string, err error) {
	if s.events == nil {
		return
	}
	_ = s.events.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "WARN",
		Type:    "vault.read_failed",
		Message: "skipping unreadable document",
		Data:    map[string]any{"document": name, "error": err.Error()},
	})
}
