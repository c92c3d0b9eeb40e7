package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelforge/internal/queue"
)

var statusTitleCaser = cases.Title(language.Und)

func buildQueueStatusRows(stats map[queue.Status]int) [][]string {
	if len(stats) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{formatStatusLabel(key), fmt.Sprintf("%d", stats[queue.Status(key)])})
	}
	return rows
}

func buildProjectRows(projects []*queue.Project) [][]string {
	if len(projects) == 0 {
		return nil
	}
	sorted := make([]*queue.Project, len(projects))
	copy(sorted, projects)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID > sorted[j].ID
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	rows := make([][]string, 0, len(sorted))
	for _, project := range sorted {
		title := strings.TrimSpace(project.Title)
		if title == "" {
			title = strings.TrimSpace(project.Topic)
		}
		if title == "" {
			title = "Unknown"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", project.ID),
			title,
			formatStatusLabel(string(project.Status)),
			formatProgress(project),
			formatDisplayTime(project.CreatedAt),
		})
	}
	return rows
}

func formatStatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	return statusTitleCaser.String(strings.ReplaceAll(status, "_", " "))
}

func formatProgress(project *queue.Project) string {
	if project == nil {
		return ""
	}
	if project.Status.IsTerminal() {
		message := strings.TrimSpace(project.ProgressMessage)
		if message == "" {
			return "-"
		}
		return truncateCell(message, 40)
	}
	if project.ProgressStage == "" {
		return "-"
	}
	return fmt.Sprintf("%s %.0f%%", project.ProgressStage, project.ProgressPercent)
}

func formatDisplayTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02 15:04")
}

func truncateCell(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
