// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data types for the pypack packaging tool.
package types

import "time"

// StepName identifies one stage of the packaging workflow.
type StepName string

const (
	// StepInstall is the dependency-installation stage (pip).
	StepInstall StepName = "install"

	// StepBundle is the executable-bundling stage (PyInstaller).
	StepBundle StepName = "bundle"
)

// BuildStatus is the terminal outcome of a workflow run.
type BuildStatus string

const (
	BuildSucceeded BuildStatus = "succeeded"
	BuildFailed    BuildStatus = "failed"
)

// BuildRecord is one entry in the local build history.
type BuildRecord struct {
	// ID is assigned by the history store.
	ID int64 `json:"id" yaml:"id"`

	// StartedAt is when the workflow run began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Entry is the entry script that was bundled.
	Entry string `json:"entry" yaml:"entry"`

	// Artifact is the resolved artifact path. Empty for failed runs.
	Artifact string `json:"artifact,omitempty" yaml:"artifact,omitempty"`

	// Status records whether the run succeeded or failed.
	Status BuildStatus `json:"status" yaml:"status"`

	// FailedStep names the stage that failed. Empty on success.
	FailedStep StepName `json:"failed_step,omitempty" yaml:"failed_step,omitempty"`

	// Error is the failure message. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
