// Package catalog manages the course catalog: parsing uploaded course
// sheets and creating, listing and deleting courses.
package catalog

import (
	"regexp"
	"strings"
)

// Defaults used when a course sheet lacks the corresponding section.
const (
	defaultCategory    = "General Engineering"
	defaultDescription = "No description available"
)

// CourseInfo is the structured result of parsing a course sheet.
type CourseInfo struct {
	Title       string
	Category    string
	Description string
}

var (
	titleRe    = regexp.MustCompile(`^(.+?)(?:\n|$)`)
	categoryRe = regexp.MustCompile(`(?s)Core Areas.*?(?:\n|:)\s*(.*?)(?:\n\d|\n\n|$)`)
)

// ParseCourseInfo extracts title, category and description from the plain
// text of a course sheet's first page.
//
// The title is the first non-empty line. The category is the first entry
// under a "Core Areas" section. The description is the text between the
// title and the first section header (Core Areas, Applications or
// Skills Required).
func ParseCourseInfo(text string) *CourseInfo {
	info := &CourseInfo{
		Title:       "Unknown Title",
		Category:    defaultCategory,
		Description: defaultDescription,
	}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		if title := strings.TrimSpace(m[1]); title != "" {
			info.Title = title
		}
	}

	if m := categoryRe.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				info.Category = line
				break
			}
		}
	}

	if info.Title != "Unknown Title" {
		descriptionRe, err := regexp.Compile(`(?s)` + regexp.QuoteMeta(info.Title) + `\s*(.*?)(?:Core Areas|Applications|Skills Required)`)
		if err == nil {
			if m := descriptionRe.FindStringSubmatch(text); m != nil {
				if description := strings.TrimSpace(m[1]); description != "" {
					info.Description = description
				}
			}
		}
	}

	return info
}
