package dashboard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadCostsMissingFile(t *testing.T) {
	got := ReadCosts(filepath.Join(t.TempDir(), "pl-log.md"))
	want := CostSummary{Today: 0, Week: 0, Month: 0, PerTask: 0}
	if got != want {
		t.Errorf("ReadCosts(missing) = %+v, want %+v", got, want)
	}
}

func TestReadCostsIgnoresContent(t *testing.T) {
	want := CostSummary{Today: 0.31, Week: 1.24, Month: 9.50, PerTask: 0.15}

	for _, content := range []string{"", "| day | cost |\n| mon | 42.00 |\n"} {
		path := filepath.Join(t.TempDir(), "pl-log.md")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if got := ReadCosts(path); got != want {
			t.Errorf("ReadCosts(%q) = %+v, want %+v", content, got, want)
		}
	}
}

func TestReadCostsDirectory(t *testing.T) {
	// A directory exists but cannot be read as a file.
	if got := ReadCosts(t.TempDir()); got != (CostSummary{}) {
		t.Errorf("ReadCosts(dir) = %+v, want zeros", got)
	}
}
