package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/playdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []model.AppRecord {
	return []model.AppRecord{
		{App: "a", Category: "TOOLS", Type: model.TypeFree, ContentRating: "Everyone", InstallBand: "1K+", PrimaryGenre: "Tools"},
		{App: "b", Category: "GAME", Type: model.TypePaid, ContentRating: "Teen", InstallBand: "1M+", PrimaryGenre: "Action"},
		{App: "c", Category: "GAME", Type: model.TypeFree, ContentRating: "Everyone", InstallBand: "1K+", PrimaryGenre: ""},
		{App: "d", Category: "ART_AND_DESIGN", Type: model.TypeFree, ContentRating: "Everyone", InstallBand: "10+", PrimaryGenre: "Art & Design"},
	}
}

func TestStore_Vocabulary(t *testing.T) {
	store := NewStore(sampleRecords())

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, []string{"ART_AND_DESIGN", "GAME", "TOOLS"}, store.Vocabulary(model.FieldCategory))
	assert.Equal(t, []string{model.TypeFree, model.TypePaid}, store.Vocabulary(model.FieldType))
	assert.Equal(t, []string{"Action", "Art & Design", "Tools"}, store.Vocabulary(model.FieldPrimaryGenre))
	assert.Equal(t, []string{"10+", "1K+", "1M+"}, store.Vocabulary(model.FieldInstallBand))
}

func TestStore_VocabularyIsACopy(t *testing.T) {
	store := NewStore(sampleRecords())

	vals := store.Vocabulary(model.FieldCategory)
	vals[0] = "MUTATED"

	assert.Equal(t, "ART_AND_DESIGN", store.Vocabulary(model.FieldCategory)[0])
}

func TestStore_FilterOptions(t *testing.T) {
	store := NewStore(sampleRecords())

	opts := store.FilterOptions(model.FieldContentRating)
	assert.Equal(t, []string{model.All, "Everyone", "Teen"}, opts)

	empty := NewStore(nil)
	assert.Equal(t, []string{model.All}, empty.FilterOptions(model.FieldCategory))
	assert.Equal(t, 0, empty.All().Len())
}

func TestStore_AllIsFullView(t *testing.T) {
	store := NewStore(sampleRecords())
	view := store.All()
	require.Equal(t, 4, view.Len())
	assert.Equal(t, "a", view.At(0).App)
	assert.Equal(t, "d", view.At(3).App)
}

type stubReader struct {
	records []model.AppRecord
	err     error
}

func (s stubReader) LoadApps(context.Context) ([]model.AppRecord, error) {
	return s.records, s.err
}

func TestOpen(t *testing.T) {
	t.Run("csv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "apps.csv")
		content := header + "Chess,GAME,4.5,10,1,100,Free,0,Everyone,Board,1,100+,Free\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		store, err := Open(context.Background(), CSVSource{Path: path})
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, "csv:"+path, CSVSource{Path: path}.Describe())
	})

	t.Run("missing csv file", func(t *testing.T) {
		_, err := Open(context.Background(), CSVSource{Path: filepath.Join(t.TempDir(), "nope.csv")})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Open(ctx, CSVSource{Path: "unused.csv"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sqlite reader", func(t *testing.T) {
		src := SQLiteSource{Reader: stubReader{records: sampleRecords()}, Path: "apps.db"}
		store, err := Open(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, 4, store.Len())
		assert.Equal(t, "sqlite:apps.db", src.Describe())
	})

	t.Run("sqlite reader error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Open(context.Background(), SQLiteSource{Reader: stubReader{err: boom}})
		assert.ErrorIs(t, err, boom)
	})
}
