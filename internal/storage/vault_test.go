package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestScanTasks(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Work.md", `# Sprint

- [ ] Review PR [due:: 2024-01-20]
- [x] Deploy staging
- just a note
`)
	writeDoc(t, dir, "Home.md", "- [ ] Buy groceries\r\n- [/] Half done\r\n")
	writeDoc(t, dir, "notes.txt", "- [ ] Not markdown")

	scanner := NewVaultScanner(dir, nil)
	tasks, err := scanner.ScanTasks()
	if err != nil {
		t.Fatalf("ScanTasks(): %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3: %+v", len(tasks), tasks)
	}

	bySource := make(map[string]int)
	for _, task := range tasks {
		bySource[task.Source]++
	}
	if bySource["Work"] != 2 {
		t.Errorf("Work tasks = %d, want 2", bySource["Work"])
	}
	if bySource["Home"] != 1 {
		t.Errorf("Home tasks = %d, want 1", bySource["Home"])
	}
	if bySource["notes"] != 0 {
		t.Error("non-markdown files must be skipped")
	}
}

func TestScanTasksSourceIsBaseName(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Family Plans.md", "- [ ] Call mom\n")

	scanner := NewVaultScanner(dir, nil)
	tasks, err := scanner.ScanTasks()
	if err != nil {
		t.Fatalf("ScanTasks(): %v", err)
	}
	if len(tasks) != 1 || tasks[0].Source != "Family Plans" {
		t.Errorf("tasks = %+v, want source %q", tasks, "Family Plans")
	}
}

func TestScanTasksMissingDirectory(t *testing.T) {
	scanner := NewVaultScanner(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	tasks, err := scanner.ScanTasks()
	if err != nil {
		t.Fatalf("ScanTasks() on missing dir: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks from a missing directory", len(tasks))
	}
}

func TestScanTasksSkipsUnreadableDocument(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "Good.md", "- [ ] Readable\n")
	// A directory carrying an .md name must not abort the scan.
	if err := os.Mkdir(filepath.Join(dir, "Broken.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	scanner := NewVaultScanner(dir, nil)
	tasks, err := scanner.ScanTasks()
	if err != nil {
		t.Fatalf("ScanTasks(): %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "Readable" {
		t.Errorf("tasks = %+v, want the readable document only", tasks)
	}
}

func TestScanTasksSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "archive")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeDoc(t, sub, "Old.md", "- [ ] Buried task\n")
	writeDoc(t, dir, "Current.md", "- [ ] Visible task\n")

	scanner := NewVaultScanner(dir, nil)
	tasks, err := scanner.ScanTasks()
	if err != nil {
		t.Fatalf("ScanTasks(): %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "Visible task" {
		t.Errorf("tasks = %+v, want the top-level document only", tasks)
	}
}
