package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
)

func sampleRecord(now time.Time) analysis.Record {
	return analysis.Record{
		ID:          "uuid-v7",
		URL:         "https://www.gutenberg.org/files/1661/1661-0.txt",
		Action:      analysis.ActionPOS,
		StatusCode:  200,
		SampleHash:  "abc123",
		Sentences:   4,
		FetchedAt:   now,
		FetchTime:   1500 * time.Millisecond,
		Annotate:    2700 * time.Millisecond,
		ArtifactURI: "/var/artifacts/uuid-v7",
	}
}

func TestSaveAnalysisInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	st, err := NewWithPool(mock, "analyses")
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()
	rec := sampleRecord(now)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			rec.ID,
			rec.URL,
			"POS",
			rec.StatusCode,
			rec.SampleHash,
			rec.Sentences,
			rec.FetchedAt,
			int64(1500),
			int64(2700),
			rec.ArtifactURI,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, st.SaveAnalysis(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysisWrapsError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	st, err := NewWithPool(mock, "analyses")
	require.NoError(t, err)

	boom := errors.New("duplicate key")
	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(boom)

	err = st.SaveAnalysis(context.Background(), sampleRecord(time.Now()))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "uuid-v7")
}

func TestNewWithPoolValidation(t *testing.T) {
	t.Parallel()

	_, err := NewWithPool(nil, "analyses")
	require.Error(t, err)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewWithPool(mock, "bad;table")
	require.Error(t, err)

	st, err := NewWithPool(mock, "")
	require.NoError(t, err)
	require.Equal(t, "analyses", st.table)
}

func TestNewRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
