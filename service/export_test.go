package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/soil-health-scanner/store"
)

func TestScansXLSX(t *testing.T) {
	svc := NewAnalysisService(store.NewMemory(), 50)
	ctx := context.Background()
	scan, err := svc.Verify(ctx, "farmer-1", wheatRequest())
	require.NoError(t, err)

	data, err := svc.ExportHistory(ctx, "farmer-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Scans", "Recommendations"}, f.GetSheetList())

	rows, err := f.GetRows("Scans")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Scan ID", rows[0][0])
	assert.Equal(t, scan.ID, rows[1][0])
	assert.Equal(t, "Wheat", rows[1][2])
	assert.Equal(t, "9650", rows[1][9])

	recs, err := f.GetRows("Recommendations")
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "Vermicompost", recs[2][2])
	assert.Equal(t, "31", recs[2][4])
}

func TestScansXLSX_Empty(t *testing.T) {
	data, err := ScansXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Scans")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
