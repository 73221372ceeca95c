package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type event struct {
	Action  string
	Test    string
	Elapsed float64
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill creates file in dir", func(t *testing.T) {
		dir := t.TempDir()
		spill, err := NewFileSpill[int](dir)
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, dir, filepath.Dir(spill.Path()))
		require.FileExists(t, spill.Path())
	})

	t.Run("Len returns correct count", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())

		require.NoError(t, spill.Append(1))
		require.Equal(t, uint64(1), spill.Len())

		require.NoError(t, spill.Append(2))
		require.NoError(t, spill.Append(3))
		require.Equal(t, uint64(3), spill.Len())
	})

	t.Run("Range iterates all items in order", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		expected := []int{100, 200, 300}
		for _, v := range expected {
			require.NoError(t, spill.Append(v))
		}

		var collected []int
		err = spill.Range(func(_ uint64, item int) error {
			collected = append(collected, item)
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, expected, collected)
	})

	t.Run("Range does not leak fields between structs", func(t *testing.T) {
		spill, err := NewFileSpill[event](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(event{Action: "pass", Test: "TestA", Elapsed: 1.5}))
		require.NoError(t, spill.Append(event{Action: "output"}))

		var collected []event
		require.NoError(t, spill.Range(func(_ uint64, item event) error {
			collected = append(collected, item)
			return nil
		}))

		require.Equal(t, []event{
			{Action: "pass", Test: "TestA", Elapsed: 1.5},
			{Action: "output"},
		}, collected)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		for _, v := range []int{1, 2, 3} {
			require.NoError(t, spill.Append(v))
		}

		stop := errors.New("stop at index 1")
		count := 0
		rangeErr := spill.Range(func(index uint64, _ int) error {
			count++
			if index == 1 {
				return stop
			}
			return nil
		})

		require.ErrorIs(t, rangeErr, stop)
		require.Equal(t, 2, count)
	})

	t.Run("Range on empty spill", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		called := false
		require.NoError(t, spill.Range(func(uint64, int) error {
			called = true
			return nil
		}))
		require.False(t, called)
	})

	t.Run("Close removes the file and is idempotent", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)

		require.NoError(t, spill.Append(1))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())

		_, statErr := os.Stat(spill.Path())
		require.True(t, os.IsNotExist(statErr))

		require.ErrorIs(t, spill.Append(2), ErrClosed)
		require.ErrorIs(t, spill.Range(func(uint64, int) error { return nil }), ErrClosed)
	})
}
