package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run("GetPage", func(t *testing.T) {
		page, limit := GetPage(0, 0)
		require.Equal(t, 1, page)
		require.Equal(t, 20, limit)
		page, limit = GetPage(3, 500)
		require.Equal(t, 3, page)
		require.Equal(t, 100, limit)
	})
	t.Run("ClockOnDate", func(t *testing.T) {
		loc := time.FixedZone("MSK", 3*60*60)
		day := time.Date(2024, 3, 14, 22, 30, 0, 0, time.UTC) // 01:30 15 марта по MSK
		result, err := ClockOnDate("17:00", day, loc)
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 3, 15, 17, 0, 0, 0, loc), result)

		_, err = ClockOnDate("25:99", day, loc)
		require.Error(t, err)
	})
	t.Run("StartOfDay", func(t *testing.T) {
		loc := time.FixedZone("MSK", 3*60*60)
		day := time.Date(2024, 3, 14, 12, 30, 0, 0, loc)
		require.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, loc), StartOfDay(day, loc))
	})
}
