package database

import (
	"os"
	"path/filepath"
	"testing"

	"content-provider/models"
	"content-provider/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "cheese-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("Creates missing directory", func(t *testing.T) {
		dbPath := filepath.Join(tmpDir, "nested", "dir", "cheese.db")
		db, err := New(dbPath)
		require.NoError(t, err)
		defer db.Close()

		_, err = os.Stat(filepath.Join(tmpDir, "nested", "dir"))
		assert.NoError(t, err)
	})

	t.Run("Path with URI characters", func(t *testing.T) {
		dbPath := filepath.Join(tmpDir, "odd?name#1 %41.db")
		db, err := New(dbPath)
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, db.Migrate())

		_, err = os.Stat(dbPath)
		assert.NoError(t, err)
	})

	t.Run("Uses WAL journal", func(t *testing.T) {
		db, err := New(filepath.Join(tmpDir, "wal.db"))
		require.NoError(t, err)
		defer db.Close()

		mode, err := db.JournalMode()
		require.NoError(t, err)
		assert.Equal(t, "wal", mode)
	})

	t.Run("Migrate is idempotent", func(t *testing.T) {
		db, err := New(filepath.Join(tmpDir, "migrate.db"))
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, db.Migrate())
		require.NoError(t, db.Migrate())
	})
}

func TestCheeseOperations(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("Insert assigns increasing ids", func(t *testing.T) {
		first := &models.Cheese{Name: "Brie"}
		id1, err := repo.Insert(first)
		require.NoError(t, err)
		assert.Equal(t, id1, first.ID)

		second := &models.Cheese{Name: "Camembert"}
		id2, err := repo.Insert(second)
		require.NoError(t, err)
		assert.Greater(t, id2, id1)
	})

	t.Run("SelectByID returns the row", func(t *testing.T) {
		cheese := &models.Cheese{Name: "Roquefort"}
		id, err := repo.Insert(cheese)
		require.NoError(t, err)

		rows, err := repo.SelectByID(id)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, models.Cheese{ID: id, Name: "Roquefort"}, rows[0])
	})

	t.Run("SelectByID on missing id is empty", func(t *testing.T) {
		rows, err := repo.SelectByID(99999)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("SelectAll returns rowid order", func(t *testing.T) {
		rows, err := repo.SelectAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Brie", rows[0].Name)
		assert.Equal(t, "Camembert", rows[1].Name)
		assert.Equal(t, "Roquefort", rows[2].Name)
	})

	t.Run("Update existing and missing rows", func(t *testing.T) {
		rows, err := repo.SelectAll()
		require.NoError(t, err)

		count, err := repo.Update(models.Cheese{ID: rows[0].ID, Name: "Brie de Meaux"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.Update(models.Cheese{ID: 99999, Name: "Nothing"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		updated, err := repo.SelectByID(rows[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Brie de Meaux", updated[0].Name)
	})

	t.Run("DeleteByID existing and missing rows", func(t *testing.T) {
		id, err := repo.Insert(&models.Cheese{Name: "Feta"})
		require.NoError(t, err)

		count, err := repo.DeleteByID(id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.DeleteByID(id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Update with empty payload", func(t *testing.T) {
		count, err := repo.Update(models.Cheese{ID: 4242})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		rows, err := repo.SelectAll()
		require.NoError(t, err)
		_, err = repo.Update(models.Cheese{ID: rows[0].ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("Names keep their punctuation", func(t *testing.T) {
		for _, name := range []string{"Brie #1", "Cheese: Aged", "Caerphilly!", `Say "cheese"`, "Fromage+"} {
			cheese := &models.Cheese{Name: name}
			id, err := repo.Insert(cheese)
			require.NoError(t, err, name)

			rows, err := repo.SelectByID(id)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, *cheese, rows[0])
		}
	})

	t.Run("Insert rejects invalid names", func(t *testing.T) {
		_, err := repo.Insert(&models.Cheese{Name: ""})
		require.Error(t, err)

		var validationErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &validationErrs)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestInsertAll(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("Inserts every row", func(t *testing.T) {
		ids, err := repo.InsertAll([]models.Cheese{{Name: "Asiago"}, {Name: "Banon"}, {Name: "Comté"}})
		require.NoError(t, err)
		assert.Len(t, ids, 3)

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Invalid row rolls back the whole call", func(t *testing.T) {
		_, err := repo.InsertAll([]models.Cheese{{Name: "Gouda"}, {Name: ""}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 1")

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestTransactions(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("Commit persists writes", func(t *testing.T) {
		tx, err := repo.Begin()
		require.NoError(t, err)

		_, err = tx.Insert(&models.Cheese{Name: "Gruyère"})
		require.NoError(t, err)
		_, err = tx.InsertAll([]models.Cheese{{Name: "Emmental"}})
		require.NoError(t, err)

		require.NoError(t, tx.Commit())
		assert.NoError(t, tx.Rollback(), "rollback after commit is a no-op")

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Rollback discards writes", func(t *testing.T) {
		tx, err := repo.Begin()
		require.NoError(t, err)

		_, err = tx.Insert(&models.Cheese{Name: "Manchego"})
		require.NoError(t, err)

		rows, err := tx.SelectAll()
		require.NoError(t, err)
		assert.Len(t, rows, 3, "transaction sees its own writes")

		require.NoError(t, tx.Rollback())

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestSeed(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	inserted, err := Seed(repo)
	require.NoError(t, err)
	assert.Equal(t, len(SampleCheeses), inserted)

	inserted, err = Seed(repo)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted, "seeding a populated table does nothing")

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(SampleCheeses), count)
}
