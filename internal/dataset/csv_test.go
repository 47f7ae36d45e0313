package dataset

import (
	"strings"
	"testing"

	"github.com/Veraticus/playdash/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "App,Category,Rating,Reviews,Size_KB,Installs_Num,Type,Price_Num,Content Rating,Primary_Genre,App_Age_years,Install_Band,Price_Category\n"

func TestReadCSV(t *testing.T) {
	input := header +
		"Chess Pro,GAME,4.5,1200,20480,1000000,Free,0,Everyone,Board,3.2,1M+,Free\n" +
		"\"Notes, Simple\",TOOLS,,15,,500,Paid,2.99,Everyone,Tools,0.5,100+,Low\n" +
		"Pixel,ART_AND_DESIGN,NaN,0,1024.5,nan,Free,0,Teen,Art & Design,1,0+,Free\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	chess := records[0]
	assert.Equal(t, "Chess Pro", chess.App)
	assert.Equal(t, "GAME", chess.Category)
	require.NotNil(t, chess.Rating)
	assert.Equal(t, 4.5, *chess.Rating)
	assert.Equal(t, int64(1200), chess.Reviews)
	require.NotNil(t, chess.SizeKB)
	assert.Equal(t, 20480.0, *chess.SizeKB)
	require.NotNil(t, chess.InstallsNum)
	assert.Equal(t, int64(1_000_000), *chess.InstallsNum)
	assert.Equal(t, "Board", chess.PrimaryGenre)
	assert.Equal(t, 3.2, chess.AppAgeYears)
	assert.Equal(t, "1M+", chess.InstallBand)

	notes := records[1]
	assert.Equal(t, "Notes, Simple", notes.App)
	assert.Nil(t, notes.Rating)
	assert.Nil(t, notes.SizeKB)
	assert.True(t, notes.IsPaid())
	assert.Equal(t, 2.99, notes.PriceNum)

	pixel := records[2]
	assert.Nil(t, pixel.Rating)
	assert.Nil(t, pixel.InstallsNum)
	assert.Equal(t, "Art & Design", pixel.PrimaryGenre)
}

func TestReadCSV_HeaderOrderAndExtras(t *testing.T) {
	input := "\ufeffPrice_Category,Install_Band,App_Age_years,Primary_Genre,Content Rating,Price_Num,Type,Installs_Num,Size_KB,Reviews,Rating,Category,App,Last Updated\n" +
		"Free,10K+,2,Puzzle,Everyone,0,Free,10000,300,42,4.1,GAME,Blocks,2018-01-01\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Blocks", records[0].App)
	assert.Equal(t, int64(42), records[0].Reviews)
	assert.Equal(t, "10K+", records[0].InstallBand)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing column",
			input:   "App,Category\nx,GAME\n",
			wantErr: ErrMissingColumn,
			wantMsg: "Rating",
		},
		{
			name:    "non numeric reviews",
			input:   header + "A,GAME,4,lots,1,1,Free,0,Everyone,Action,1,1+,Free\n",
			wantErr: ErrInvalidValue,
			wantMsg: "line 2",
		},
		{
			name:    "negative price",
			input:   header + "A,GAME,4,1,1,1,Paid,-1,Everyone,Action,1,1+,Free\n",
			wantErr: ErrInvalidValue,
			wantMsg: "Price_Num",
		},
		{
			name:    "required value empty",
			input:   header + "A,GAME,4,1,1,1,Free,0,Everyone,Action,,1+,Free\n",
			wantErr: ErrInvalidValue,
			wantMsg: "App_Age_years",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	records, err := ReadCSV(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "NaN", "nan", "NA", "null", "None"} {
		assert.True(t, isMissing(s), s)
	}
	for _, s := range []string{"0", "4.5", "n/a"} {
		assert.False(t, isMissing(s), s)
	}
}

func TestRequiredColumnsMatchFields(t *testing.T) {
	for _, f := range append(model.FilterFields, model.EncodedFields...) {
		assert.Contains(t, RequiredColumns, string(f))
	}
}
