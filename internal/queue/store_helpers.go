package queue

import (
	"database/sql"
	"errors"
	"time"
)

const projectColumns = "id, topic, title, status, script_json, narration_file, transcript_file, scene_plan_json, final_file, uploaded_url, error_message, created_at, updated_at, progress_stage, progress_percent, progress_message, retry_count, needs_review, review_reason"

func scanProject(scanner interface{ Scan(dest ...any) error }) (*Project, error) {
	var (
		id              int64
		topic           sql.NullString
		title           sql.NullString
		statusStr       string
		scriptJSON      sql.NullString
		narrationFile   sql.NullString
		transcriptFile  sql.NullString
		scenePlanJSON   sql.NullString
		finalFile       sql.NullString
		uploadedURL     sql.NullString
		errorMessage    sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
		progressStage   sql.NullString
		progressPercent sql.NullFloat64
		progressMessage sql.NullString
		retryCount      sql.NullInt64
		needsReview     sql.NullInt64
		reviewReason    sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&topic,
		&title,
		&statusStr,
		&scriptJSON,
		&narrationFile,
		&transcriptFile,
		&scenePlanJSON,
		&finalFile,
		&uploadedURL,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&progressStage,
		&progressPercent,
		&progressMessage,
		&retryCount,
		&needsReview,
		&reviewReason,
	); err != nil {
		return nil, err
	}

	project := &Project{
		ID:              id,
		Topic:           topic.String,
		Title:           title.String,
		Status:          Status(statusStr),
		ScriptJSON:      scriptJSON.String,
		NarrationFile:   narrationFile.String,
		TranscriptFile:  transcriptFile.String,
		ScenePlanJSON:   scenePlanJSON.String,
		FinalFile:       finalFile.String,
		UploadedURL:     uploadedURL.String,
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent.Float64,
		ProgressMessage: progressMessage.String,
		ReviewReason:    reviewReason.String,
	}
	if retryCount.Valid {
		project.RetryCount = int(retryCount.Int64)
	}
	if needsReview.Valid {
		project.NeedsReview = needsReview.Int64 != 0
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		project.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		project.UpdatedAt = updated
	}
	return project, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
