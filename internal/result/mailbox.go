package result

import (
	"os"
	"path/filepath"
)

// Mailbox is the single-slot result file shared by the helper and the
// requesting process. There is no locking; the last writer wins.
type Mailbox struct {
	path string
}

func NewMailbox(path string) *Mailbox {
	return &Mailbox{path: path}
}

func (m *Mailbox) Path() string {
	return m.path
}

// Seed truncates the file down to just the id line, so a reader can tell a
// helper that has started from one that never ran.
func (m *Mailbox) Seed(id string) error {
	return m.write(Format(Record{ID: id}))
}

func (m *Mailbox) Publish(r Record) error {
	return m.write(Format(r))
}

// Read returns ErrNotFound when no helper has written the file yet, and a
// *FormatError when it holds something unparseable (for example a write cut
// short by a killed helper).
func (m *Mailbox) Read() (Record, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return Parse(data)
}

// write replaces the file through a rename so readers never see half a
// record. On Windows the rename fails while a reader holds the file open; the
// direct truncating write is the fallback.
func (m *Mailbox) write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err == nil {
		if err := os.Rename(tmp, m.path); err == nil {
			return nil
		}
		os.Remove(tmp)
	}
	return os.WriteFile(m.path, data, 0644)
}
