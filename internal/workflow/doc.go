// Package workflow drives queued projects through the production pipeline.
//
// The Manager polls the queue store for the oldest actionable project,
// transitions it into the matching processing status, and hands it to the
// registered stage.Handler. Stage failures are classified through the
// services error markers: validation and configuration problems park the
// project for review, transient failures are retried up to the configured
// attempt budget, and everything else is marked failed.
//
// Stages are registered via ConfigureStages; an unset handler removes its
// stage from the pipeline and the surrounding statuses chain directly.
package workflow
