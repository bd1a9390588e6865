package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTasks = `# Active Tasks

## In Flight

### TASK-004: Command Center Interface
**Status:** COMPLETED
**Owner:** Clyde

Built the dashboard.

### TASK-005: Personal AI Cost Tracker
**Owner:** Clyde

### TASK-006: Command Center Deployment
- **Status:** IN PROGRESS

## Archive

Nothing here.
`

func TestParseTasks(t *testing.T) {
	tasks := ParseTasks(sampleTasks)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	tests := []struct {
		idx    int
		id     string
		title  string
		status string
		owner  string
	}{
		{0, "004", "Command Center Interface", "COMPLETED", "Clyde"},
		{1, "005", "Personal AI Cost Tracker", "Unknown", "Clyde"},
		{2, "006", "Command Center Deployment", "IN PROGRESS", "Unknown"},
	}

	for _, tt := range tests {
		got := tasks[tt.idx]
		if got.ID != tt.id {
			t.Errorf("task %d: id=%q, want %q", tt.idx, got.ID, tt.id)
		}
		if got.Title != tt.title {
			t.Errorf("task %d: title=%q, want %q", tt.idx, got.Title, tt.title)
		}
		if got.Status != tt.status {
			t.Errorf("task %d: status=%q, want %q", tt.idx, got.Status, tt.status)
		}
		if got.Owner != tt.owner {
			t.Errorf("task %d: owner=%q, want %q", tt.idx, got.Owner, tt.owner)
		}
	}
}

func TestParseTasksKeepsRawSection(t *testing.T) {
	tasks := ParseTasks(sampleTasks)
	if len(tasks) == 0 {
		t.Fatal("expected tasks")
	}
	text := tasks[0].Text
	if !strings.HasPrefix(text, "### TASK-004: Command Center Interface\n") {
		t.Errorf("text should start at the heading, got %q", text)
	}
	if !strings.Contains(text, "Built the dashboard.") {
		t.Errorf("text should keep the body, got %q", text)
	}
	if strings.Contains(text, "TASK-005") {
		t.Errorf("text should stop before the next task, got %q", text)
	}

	last := tasks[2].Text
	if strings.Contains(last, "Archive") {
		t.Errorf("last section should stop at the ## heading, got %q", last)
	}
}

func TestParseTasksNoSections(t *testing.T) {
	for _, doc := range []string{"", "# Tasks\n\nnothing yet\n", "### Notes\n**Status:** x\n"} {
		tasks := ParseTasks(doc)
		if tasks == nil {
			t.Errorf("ParseTasks(%q) returned nil, want empty slice", doc)
		}
		if len(tasks) != 0 {
			t.Errorf("ParseTasks(%q) returned %d tasks, want 0", doc, len(tasks))
		}
	}
}

func TestParseTasksSkipsMalformedHeadings(t *testing.T) {
	doc := `### TASK-abc: Not numeric
**Status:** DONE

### TASK-7:missing space
**Status:** DONE

### TASK-8: Real one
**Status:** OPEN
`
	tasks := ParseTasks(doc)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d: %+v", len(tasks), tasks)
	}
	if tasks[0].ID != "8" || tasks[0].Status != "OPEN" {
		t.Errorf("got %+v, want TASK-8 OPEN", tasks[0])
	}
}

func TestParseTasksKeepsDuplicates(t *testing.T) {
	doc := "### TASK-1: First\n\n### TASK-1: Again\n"
	tasks := ParseTasks(doc)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "1" || tasks[1].ID != "1" {
		t.Errorf("ids = %q, %q; want 1, 1", tasks[0].ID, tasks[1].ID)
	}
	if tasks[1].Title != "Again" {
		t.Errorf("second title = %q, want Again", tasks[1].Title)
	}
}

func TestParseTasksKeepsFieldsAsWritten(t *testing.T) {
	doc := "### TASK-9: Padded title   \r\n**Status:**    \r\n**Owner:** ops \r\n"
	tasks := ParseTasks(doc)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Padded title   " {
		t.Errorf("title = %q, want %q", got.Title, "Padded title   ")
	}
	if got.Status != "   " {
		t.Errorf("status = %q, want three spaces", got.Status)
	}
	if got.Owner != "ops " {
		t.Errorf("owner = %q, want %q", got.Owner, "ops ")
	}
}

func TestReadTasks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "active-tasks.md")
	if err := os.WriteFile(path, []byte(sampleTasks), 0644); err != nil {
		t.Fatal(err)
	}

	if got := len(ReadTasks(path)); got != 3 {
		t.Errorf("ReadTasks() returned %d tasks, want 3", got)
	}
}

func TestReadTasksMissingFile(t *testing.T) {
	tasks := ReadTasks(filepath.Join(t.TempDir(), "missing.md"))
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("ReadTasks(missing) = %v, want empty slice", tasks)
	}
}
