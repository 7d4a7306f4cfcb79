package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
)

type fakeRowSaver struct {
	saved []models.ImportRow
	err   error
}

func (f *fakeRowSaver) SaveImportedRows(_ context.Context, rows []models.ImportRow) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = rows
	return len(rows), nil
}

const simpleCSV = "name,price,category,tags\n" +
	`Margherita,11.50,Pizza,"mood_comfort,portion_standard,temp_hot"` + "\n" +
	`House Lemonade,4.00,Soft Drinks,"abv_zero,feel_crisp_cold"` + "\n"

func TestImportWithoutPersist(t *testing.T) {
	saver := &fakeRowSaver{}
	svc := NewImportService(saver, newFakeRecorder(), zerolog.Nop())

	report, err := svc.Import(context.Background(), strings.NewReader(simpleCSV), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Total)
	assert.Nil(t, saver.saved, "dry run must not touch the store")
}

func TestImportPersists(t *testing.T) {
	saver := &fakeRowSaver{}
	recorder := newFakeRecorder()
	svc := NewImportService(saver, recorder, zerolog.Nop())

	report, err := svc.Import(context.Background(), strings.NewReader(simpleCSV), true)
	require.NoError(t, err)

	assert.Len(t, saver.saved, report.Summary.Total)

	event := waitFor(t, recorder.events)
	assert.Equal(t, "menu_import", event.Name)
	assert.Equal(t, true, event.Props["persisted"])
}

func TestImportStructuralFailurePersistsNothing(t *testing.T) {
	saver := &fakeRowSaver{}
	svc := NewImportService(saver, newFakeRecorder(), zerolog.Nop())

	report, err := svc.Import(context.Background(), strings.NewReader("name,category\nNo Price,Pizza\n"), true)
	require.NoError(t, err)

	assert.NotEmpty(t, report.GlobalErrors)
	assert.Nil(t, saver.saved)
}

func TestImportSaveError(t *testing.T) {
	saver := &fakeRowSaver{err: errors.New("neo4j unavailable")}
	svc := NewImportService(saver, newFakeRecorder(), zerolog.Nop())

	_, err := svc.Import(context.Background(), strings.NewReader(simpleCSV), true)
	assert.ErrorContains(t, err, "failed to persist import")
}
