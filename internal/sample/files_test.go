package sample

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tokkun-notice/internal/service"
	"tokkun-notice/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAllCoversEachOutcome(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "samples")

	paths, err := WriteAll(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(Files()))

	svc := service.NewImportService(service.NewExcelService(), utils.ComponentLogger("test"))
	want := []error{nil, service.ErrNoMatchingRows, service.ErrMissingSheet, service.ErrNoDataRows}

	for i, path := range paths {
		assert.Equal(t, filepath.Join(dir, Files()[i].Name), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = svc.Process(context.Background(), filepath.Base(path), data)
		if want[i] == nil {
			assert.NoError(t, err, path)
		} else {
			assert.ErrorIs(t, err, want[i], path)
		}
	}
}

func TestWriteAllFailsOnFileInPlaceOfDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "samples")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := WriteAll(blocker)
	assert.Error(t, err)
}
