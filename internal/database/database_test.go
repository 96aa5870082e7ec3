package database

import (
	"context"
	"testing"
	"time"

	"word-quiz/internal/domain"
	"word-quiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLDriverName(t *testing.T) {
	cases := map[string]string{
		"sqlite":     "sqlite",
		"sqlite3":    "sqlite",
		"postgres":   "pgx",
		"postgresql": "pgx",
		"oracle":     "oracle",
	}
	for in, want := range cases {
		got, err := SQLDriverName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := SQLDriverName("mysql")
	assert.Error(t, err)
}

func TestLoadMigrations(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres, DriverOracle} {
		migrations, err := LoadMigrations(driver)
		require.NoError(t, err, driver)
		require.Len(t, migrations, 2, driver)
		assert.Equal(t, "000001_create_word_tests", migrations[0].Version)
		assert.Contains(t, migrations[0].Statement, "word_tests")
		assert.NotContains(t, migrations[0].Statement, ";")
	}
}

func TestRunMigrations_SQLite(t *testing.T) {
	db, err := NewSQLXDB(DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	ran, err := RunMigrations(ctx, db, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_word_tests", "000002_index_word_tests_uploaded_at"}, ran)

	ran, err = RunMigrations(ctx, db, DriverSQLite)
	require.NoError(t, err)
	assert.Empty(t, ran)

	// The migrated schema round-trips records through the repository.
	repo := repository.NewQuizRecordDatabaseAdapter(db)
	record := domain.NewQuizRecord("01HGZ8VNRYXS8QKNJV5GRWPWDQ", "")
	record.DocFile = "uploads/01HGZ8VNRYXS8QKNJV5GRWPWDQ_quiz.docx"
	require.NoError(t, repo.Create(ctx, record))

	title := "Practice Test"
	answer := "b"
	record.ParsedJSON = &domain.QuizDocument{
		Title: &title,
		Questions: []domain.Question{
			{Number: 1, Question: "What is 2+2?", Options: []string{"a) 3", "b) 4"}, CorrectAnswer: &answer},
		},
	}
	require.NoError(t, repo.Update(ctx, record))

	got, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.DefaultTestTitle, got.Title)
	assert.Equal(t, record.ParsedJSON, got.ParsedJSON)
	assert.WithinDuration(t, record.UploadedAt, got.UploadedAt, time.Second)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	require.NoError(t, repo.Delete(ctx, record.ID))
	got, err = repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
