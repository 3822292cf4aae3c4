package usecase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samali323/carbonemissioncalc-sub000/internal/refdata"
	"github.com/stretchr/testify/require"
)

func loadRefData(t *testing.T, yaml string) *refdata.ReferenceData {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	ref, err := refdata.Load(path)
	require.NoError(t, err)
	return ref
}

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }
