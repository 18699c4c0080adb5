package netflix

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
	path := filepath.Join(t.TempDir(), "shows.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "netflix", New("anywhere").Name())
}

func TestSource_Load(t *testing.T) {
	t.Run("normalises movie and tv rows", func(t *testing.T) {
		path := writeCatalog(t, `title,director,cast,listed_in,description,duration,type
Dick Johnson Is Dead,Kirsten Johnson,,Documentaries,A father prepares for death.,90 min,Movie
Blood & Water,,"Ama Qamata, Khosi Ngema","International TV Shows, TV Dramas",A teen investigates.,2 Seasons,TV Show
`)

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)

		movie := records[0]
		assert.Equal(t, "Dick Johnson Is Dead", movie.Title)
		require.NotNil(t, movie.Director)
		assert.Equal(t, "Kirsten Johnson", *movie.Director)
		assert.Equal(t, domain.KindMovie, movie.Kind)
		require.NotNil(t, movie.DurationMin)
		assert.Equal(t, 90, *movie.DurationMin)

		show := records[1]
		assert.Equal(t, "Blood & Water", show.Title)
		assert.Nil(t, show.Director)
		assert.Equal(t, []string{"Ama Qamata", "Khosi Ngema"}, show.Cast)
		assert.Equal(t, []string{"International TV Shows", "TV Dramas"}, show.Genre)
		assert.Equal(t, domain.KindTVShow, show.Kind)
		assert.Nil(t, show.DurationMin, "season-based duration carries no minutes")
	})

	t.Run("skips rows without title or valid type", func(t *testing.T) {
		path := writeCatalog(t, `title,type
,Movie
Valid Movie,Movie
Bad Kind,Documentary
Valid Show,TV Show
`)

		records, err := New(path).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Valid Movie", records[0].Title)
		assert.Equal(t, "Valid Show", records[1].Title)
	})

	t.Run("unreadable path is an error", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
		assert.Error(t, err)
	})
}
