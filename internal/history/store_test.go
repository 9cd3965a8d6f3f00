// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pypack/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, ".pypack", "history.db"))
	require.NoError(t, err, "database file should exist")
}

func TestRecordAndList(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(ctx, types.BuildRecord{
		StartedAt: started,
		Duration:  42 * time.Second,
		Entry:     "pdf_splitter.py",
		Artifact:  "dist/PDFSplitter",
		Status:    types.BuildSucceeded,
	}))
	require.NoError(t, s.Record(ctx, types.BuildRecord{
		StartedAt:  started.Add(time.Hour),
		Duration:   3 * time.Second,
		Entry:      "pdf_splitter.py",
		Status:     types.BuildFailed,
		FailedStep: types.StepBundle,
		Error:      "PyInstaller not available",
	}))

	recs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Newest first.
	assert.Equal(t, types.BuildFailed, recs[0].Status)
	assert.Equal(t, types.StepBundle, recs[0].FailedStep)
	assert.Equal(t, "PyInstaller not available", recs[0].Error)
	assert.Equal(t, started.Add(time.Hour), recs[0].StartedAt)

	assert.Equal(t, types.BuildSucceeded, recs[1].Status)
	assert.Equal(t, "dist/PDFSplitter", recs[1].Artifact)
	assert.Equal(t, 42*time.Second, recs[1].Duration)
	assert.Empty(t, recs[1].FailedStep)
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, types.BuildRecord{
			StartedAt: time.Now().UTC(),
			Entry:     "pdf_splitter.py",
			Status:    types.BuildSucceeded,
		}))
	}

	recs, err := s.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	all, err := s.List(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestListEmpty(t *testing.T) {
	s := openStore(t)
	recs, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestExportYAML(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, types.BuildRecord{
		StartedAt: time.Now().UTC(),
		Entry:     "pdf_splitter.py",
		Artifact:  "dist/PDFSplitter",
		Status:    types.BuildSucceeded,
	}))

	path, err := s.ExportYAML(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pdf_splitter.py")
	assert.Contains(t, string(data), "succeeded")
}
