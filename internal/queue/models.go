package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a queued project.
type Status string

const (
	StatusPending      Status = "pending"
	StatusScripting    Status = "scripting"
	StatusScripted     Status = "scripted"
	StatusSynthesizing Status = "synthesizing"
	StatusSynthesized  Status = "synthesized"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusPlanning     Status = "planning"
	StatusPlanned      Status = "planned"
	StatusRendering    Status = "rendering"
	StatusRendered     Status = "rendered"
	StatusUploading    Status = "uploading"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

// DaemonStopReason is the error message set when projects are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusScripting,
	StatusScripted,
	StatusSynthesizing,
	StatusSynthesized,
	StatusTranscribing,
	StatusTranscribed,
	StatusPlanning,
	StatusPlanned,
	StatusRendering,
	StatusRendered,
	StatusUploading,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusScripting:    {},
	StatusSynthesizing: {},
	StatusTranscribing: {},
	StatusPlanning:     {},
	StatusRendering:    {},
	StatusUploading:    {},
}

type statusTransition struct {
	from Status
	to   Status
}

// stageRollbackTransitions map an in-flight status back to the status a
// project must hold for the stage to run again.
var stageRollbackTransitions = []statusTransition{
	{from: StatusScripting, to: StatusPending},
	{from: StatusSynthesizing, to: StatusScripted},
	{from: StatusTranscribing, to: StatusSynthesized},
	{from: StatusPlanning, to: StatusTranscribed},
	{from: StatusRendering, to: StatusPlanned},
	{from: StatusUploading, to: StatusRendered},
}

// DatabaseHealth captures diagnostic information about the queue database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalItems       int
	Error            string
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Review     int
	Completed  int
}

// Project represents a video project persisted in SQLite.
type Project struct {
	ID              int64
	Topic           string
	Title           string
	Status          Status
	ScriptJSON      string
	NarrationFile   string
	TranscriptFile  string
	ScenePlanJSON   string
	FinalFile       string
	UploadedURL     string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	RetryCount      int
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight operation.
func (p Project) IsProcessing() bool {
	_, ok := processingStatuses[p.Status]
	return ok
}

// IsProcessingStatus reports whether a status reflects an in-flight operation.
func IsProcessingStatus(status Status) bool {
	_, ok := processingStatuses[status]
	return ok
}

// IsTerminal reports whether the status ends the workflow for a project.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusReview:
		return true
	default:
		return false
	}
}

// InitProgress resets progress fields for a new stage. If ProgressStage is
// currently empty it is set to the provided stage value; otherwise the
// existing stage is preserved to support resume scenarios.
func (p *Project) InitProgress(stage, message string) {
	if p.ProgressStage == "" {
		p.ProgressStage = stage
	}
	p.ProgressMessage = message
	p.ProgressPercent = 0
	p.ErrorMessage = ""
}

// SetProgress updates all three progress fields atomically.
func (p *Project) SetProgress(stage, message string, percent float64) {
	p.ProgressStage = stage
	p.ProgressMessage = message
	p.ProgressPercent = percent
}

// SetProgressComplete sets progress to 100% with the given stage and message.
func (p *Project) SetProgressComplete(stage, message string) {
	p.SetProgress(stage, message, 100)
}

// SetFailed marks the project as failed with the given error message.
func (p *Project) SetFailed(message string) {
	p.Status = StatusFailed
	p.ErrorMessage = message
	p.ProgressPercent = 0
	p.ProgressMessage = message
	p.ProgressStage = "Failed"
}

// SetReview parks the project for manual attention with the given reason.
func (p *Project) SetReview(reason string) {
	p.Status = StatusReview
	p.NeedsReview = true
	p.ReviewReason = reason
	p.ProgressPercent = 0
	p.ProgressMessage = reason
	p.ProgressStage = "Review"
}
