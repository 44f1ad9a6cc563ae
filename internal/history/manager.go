// Package history keeps prompt inputs between sessions in small TOML files.
package history

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// DefaultLimit is the number of entries Add keeps
const DefaultLimit = 50

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
	limit      int
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager in ~/.local/share/tui-treeview/history
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewManagerIn(filepath.Join(homeDir, ".local", "share", "tui-treeview", "history"))
}

// NewManagerIn creates a history manager that stores its files in dir
func NewManagerIn(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Manager{historyDir: dir, limit: DefaultLimit}, nil
}

// Load loads history entries from a TOML file, oldest first. A missing or
// corrupted file is an empty history.
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.historyDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}
	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.historyDir, filename), data, 0644)
}

// Add moves entry to the end of entries, dropping the oldest entries past
// the limit, and saves the result
func (m *Manager) Add(filename string, entries []string, entry string) ([]string, error) {
	if entry == "" {
		return entries, nil
	}
	entries = slices.DeleteFunc(slices.Clone(entries), func(e string) bool { return e == entry })
	entries = append(entries, entry)
	if len(entries) > m.limit {
		entries = entries[len(entries)-m.limit:]
	}
	return entries, m.Save(filename, entries)
}
