package imdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reel-labs/reelsearch/internal/core/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "imdb", New("anywhere").Name())
}

func TestSource_Load(t *testing.T) {
	t.Run("normalises a full row", func(t *testing.T) {
		path := writeCatalog(t, `title,stars,genre,description,duration
The Shawshank Redemption,"['Tim Robbins', 'Morgan Freeman']","Drama",Two imprisoned men bond over a number of years.,142 min
`)

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "The Shawshank Redemption", rec.Title)
		assert.Nil(t, rec.Director)
		assert.Equal(t, []string{"Tim Robbins", "Morgan Freeman"}, rec.Cast)
		assert.Equal(t, []string{"Drama"}, rec.Genre)
		require.NotNil(t, rec.Description)
		assert.Contains(t, *rec.Description, "imprisoned men")
		require.NotNil(t, rec.DurationMin)
		assert.Equal(t, 142, *rec.DurationMin)
		assert.Equal(t, domain.KindMovie, rec.Kind)
	})

	t.Run("every row is a movie", func(t *testing.T) {
		path := writeCatalog(t, "title,genre\nSome Film,Comedy\nAnother Film,Horror\n")

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, rec := range records {
			assert.Equal(t, domain.KindMovie, rec.Kind)
		}
	})

	t.Run("skips rows without a title", func(t *testing.T) {
		path := writeCatalog(t, "title,genre\n,Drama\nKept,Comedy\n   ,Horror\n")

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Kept", records[0].Title)
	})

	t.Run("missing cells become explicit absences", func(t *testing.T) {
		path := writeCatalog(t, "title,stars,genre,description,duration\nMinimal,,,,\n")

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Empty(t, rec.Cast)
		assert.Empty(t, rec.Genre)
		assert.Nil(t, rec.Description)
		assert.Nil(t, rec.DurationMin)
	})

	t.Run("unreadable path is an error", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
		assert.Error(t, err)
	})
}
