package am

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "fortran.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(watched, []byte("a"), DefaultFilePermissions))

	fw, err := NewFileWatcher(200*time.Millisecond, watched)
	require.NoError(t, err)
	defer fw.Stop()

	changes := make(chan []string, 4)
	fw.OnChange(func(changed []string) error {
		changes <- changed
		return nil
	})
	fw.Start()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), DefaultFilePermissions))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte{byte('b' + i)}, DefaultFilePermissions))
	}

	select {
	case changed := <-changes:
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case extra := <-changes:
		t.Fatalf("unexpected second batch: %v", extra)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestFileWatcher_BatchesDoNotOverlap(t *testing.T) {
	fw := &FileWatcher{pending: make(map[string]bool)}

	var active, maxActive atomic.Int32
	var mu sync.Mutex
	var seen []string
	fw.OnChange(func(changed []string) error {
		n := active.Add(1)
		defer active.Add(-1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		seen = append(seen, changed...)
		mu.Unlock()
		return nil
	})

	names := []string{"a.toml", "b.toml", "c.toml", "d.toml"}
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fw.mu.Lock()
			fw.pending[name] = true
			fw.mu.Unlock()
			fw.fire()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
	sort.Strings(seen)
	assert.Equal(t, names, seen)
}

func TestFileWatcher_IgnoresBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName)
	require.NoError(t, Save(Starter("cc"), path))

	fw, err := NewFileWatcher(20*time.Millisecond, path)
	require.NoError(t, err)
	defer fw.Stop()

	changes := make(chan []string, 1)
	fw.OnChange(func(changed []string) error {
		changes <- changed
		return nil
	})
	fw.Start()

	require.NoError(t, os.WriteFile(BackupPath(path, 1), []byte("module = \"ar\"\n"), DefaultFilePermissions))

	select {
	case changed := <-changes:
		t.Fatalf("backup write reported: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestNewFileWatcher_Errors(t *testing.T) {
	_, err := NewFileWatcher(time.Millisecond)
	assert.Error(t, err)

	_, err = NewFileWatcher(time.Millisecond, filepath.Join(t.TempDir(), "missing-dir", "x.toml"))
	assert.Error(t, err)
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/commonargs.toml.back1"))
	assert.True(t, isBackupFile("fortran.yaml.back3"))
	assert.False(t, isBackupFile("commonargs.toml"))
	assert.False(t, isBackupFile("notes.backup"))
}
