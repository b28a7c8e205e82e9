package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/trainer-workload/internal/lib/month"
	"github.com/magabrotheeeer/trainer-workload/internal/models"
)

func TestStorage_FindTrainerByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	uid := factory.CreateTrainer(t, "trainer.jane", "Jane", "Doe", true)
	factory.CreateTrainingHours(t, uid, 2024, 3, 8)
	factory.CreateTrainingHours(t, uid, 2024, 4, 5)
	factory.CreateTrainingHours(t, uid, 2025, 1, 2)

	t.Run("запись со всеми годовыми сводками", func(t *testing.T) {
		rec, err := storage.FindTrainerByUsername(context.Background(), "trainer.jane")
		require.NoError(t, err)

		assert.Equal(t, uid, rec.UID)
		assert.Equal(t, "trainer.jane", rec.Username)
		assert.Equal(t, "Jane", rec.FirstName)
		assert.Equal(t, "Doe", rec.LastName)
		assert.True(t, rec.IsActive)

		require.Len(t, rec.Years, 2)
		assert.Equal(t, 8, rec.Years[2024].Hours(month.March))
		assert.Equal(t, 5, rec.Years[2024].Hours(month.April))
		assert.Equal(t, 2, rec.Years[2025].Hours(month.January))
	})

	t.Run("неизвестный username", func(t *testing.T) {
		_, err := storage.FindTrainerByUsername(context.Background(), "ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTrainerNotFound)
	})
}

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(storage))
}

func TestStorage_ExistsTrainerByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateTrainer(t, "trainer.jane", "Jane", "Doe", true)

	exists, err := storage.ExistsTrainerByUsername(context.Background(), "trainer.jane")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = storage.ExistsTrainerByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStorage_SaveTrainerRecord(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	verification := NewTestVerification(storage)

	t.Run("новая запись получает uid", func(t *testing.T) {
		rec := models.NewTrainerRecord("trainer.jane", "Jane", "Doe", true)
		rec.YearFor(2024).AddHours(month.March, 8)

		saved, err := storage.SaveTrainerRecord(context.Background(), rec)
		require.NoError(t, err)
		require.NotEmpty(t, saved.UID)

		verification.VerifyTrainerExists(t, "trainer.jane")
		verification.VerifyMonthlyHours(t, saved.UID, 2024, 3, 8)
	})

	t.Run("повторное сохранение обновляет профиль и часы", func(t *testing.T) {
		rec, err := storage.FindTrainerByUsername(context.Background(), "trainer.jane")
		require.NoError(t, err)

		rec.IsActive = false
		rec.YearFor(2024).AddHours(month.March, 2)
		rec.YearFor(2025).AddHours(month.January, 4)

		saved, err := storage.SaveTrainerRecord(context.Background(), rec)
		require.NoError(t, err)

		reread, err := storage.FindTrainerByUsername(context.Background(), "trainer.jane")
		require.NoError(t, err)
		assert.Equal(t, saved.UID, reread.UID)
		assert.False(t, reread.IsActive)
		assert.Equal(t, 10, reread.Years[2024].Hours(month.March))
		assert.Equal(t, 4, reread.Years[2025].Hours(month.January))
	})

	t.Run("отменённый контекст", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec := models.NewTrainerRecord("trainer.bob", "Bob", "Stone", true)
		_, err := storage.SaveTrainerRecord(ctx, rec)
		require.Error(t, err)
	})
}
