package dashboard

import (
	"log"
	"os"
	"regexp"
	"strings"
)

const unknownField = "Unknown"

var (
	taskStartRe   = regexp.MustCompile(`### TASK-\d+:`)
	taskHeadingRe = regexp.MustCompile(`### TASK-(\d+): (.+)`)
	taskStatusRe  = regexp.MustCompile(`\*\*Status:\*\* (.+)`)
	taskOwnerRe   = regexp.MustCompile(`\*\*Owner:\*\* (.+)`)
)

// ParseTasks extracts one Task per "### TASK-<digits>:" section, in document
// order. A section runs to the next "### " or "## " marker or the end of the
// document. Sections whose heading has no title are skipped. Duplicate ids
// are kept. Title, status and owner are kept as written, minus a trailing
// carriage return.
func ParseTasks(content string) []Task {
	tasks := []Task{}
	pos := 0
	for pos < len(content) {
		loc := taskStartRe.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		end := sectionEnd(content, pos+loc[1])
		pos = end

		section := content[start:end]
		heading := taskHeadingRe.FindStringSubmatch(section)
		if heading == nil {
			continue
		}
		tasks = append(tasks, Task{
			ID:     heading[1],
			Title:  strings.TrimSuffix(heading[2], "\r"),
			Status: fieldValue(taskStatusRe, section),
			Owner:  fieldValue(taskOwnerRe, section),
			Text:   section,
		})
	}
	return tasks
}

// sectionEnd returns the offset of the first "### " or "## " at or after
// from, or len(content).
func sectionEnd(content string, from int) int {
	end := len(content)
	for _, marker := range []string{"### ", "## "} {
		if i := strings.Index(content[from:], marker); i >= 0 && from+i < end {
			end = from + i
		}
	}
	return end
}

func fieldValue(re *regexp.Regexp, section string) string {
	m := re.FindStringSubmatch(section)
	if m == nil {
		return unknownField
	}
	return strings.TrimSuffix(m[1], "\r")
}

// ReadTasks parses the task document at path. Any read failure is logged
// and yields an empty list.
func ReadTasks(path string) []Task {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("tasks: reading %s: %v", path, err)
		return []Task{}
	}
	return ParseTasks(string(data))
}
