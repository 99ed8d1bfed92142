package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Fontikcz12/quantizer/midi"
	"github.com/Fontikcz12/quantizer/model"
	"github.com/Fontikcz12/quantizer/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMidi(t *testing.T, path string) {
	t.Helper()
	s, err := midi.Encode([]model.RawEvent{
		{Delta: 44, Kind: model.KindNoteOn, Pitch: 60, Velocity: 100},
		{Delta: 60, Kind: model.KindNoteOff, Pitch: 60},
	}, 480)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, midi.Write(&buf, s))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestQuantizeFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "song.mid")
	out := filepath.Join(dir, "out", "song_quantized.mid")
	writeMidi(t, in)

	flags := &quantizeFlags{request: model.QuantizeRequest{GridSize: 15, Mode: "nearest", Strength: 100, MinGap: 3}}
	stats, err := quantizeFile(in, out, flags)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{NoteCount: 1, TotalShift: 1, AvgShift: 1}, stats)

	parsed, err := midi.ReadMidiFile(out)
	require.NoError(t, err)
	song, err := midi.Decode(parsed)
	require.NoError(t, err)
	assert.Equal(t, uint16(480), song.TicksPerBeat)
}

func TestRunBatch(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeMidi(t, filepath.Join(in, "a.mid"))
	writeMidi(t, filepath.Join(in, "nested", "b.midi"))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.mid"), []byte("nope"), 0o644))

	batchOpts = &quantizeFlags{request: model.QuantizeRequest{GridSize: 120, Mode: "forward", Strength: 100}}
	paths := []string{
		filepath.Join(in, "a.mid"),
		filepath.Join(in, "nested", "b.midi"),
		filepath.Join(in, "broken.mid"),
	}
	failed := runBatch(paths, in, out, 2)

	assert.Equal(t, 1, failed)
	assert.FileExists(t, filepath.Join(out, "a_quantized.mid"))
	assert.FileExists(t, filepath.Join(out, "nested", "b_quantized.mid"))
}

func TestNewStores(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", filepath.Join(dir, "up"))
	t.Setenv("PROCESSED_PATH", filepath.Join(dir, "done"))

	uploads, processed, err := newStores("dir")
	require.NoError(t, err)
	assert.IsType(t, &storage.Dir{}, uploads)
	assert.IsType(t, &storage.Dir{}, processed)
	assert.DirExists(t, filepath.Join(dir, "done"))

	uploads, _, err = newStores("memory")
	require.NoError(t, err)
	assert.IsType(t, &storage.Memory{}, uploads)

	_, _, err = newStores("floppy")
	assert.Error(t, err)

	t.Setenv("S3_BUCKET", "")
	_, _, err = newStores("s3")
	assert.Error(t, err)
}

func TestNewServerHasJanitorForDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "dir")
	t.Setenv("UPLOAD_PATH", filepath.Join(dir, "up"))
	t.Setenv("PROCESSED_PATH", filepath.Join(dir, "done"))

	server, err := NewServer()
	require.NoError(t, err)
	assert.NotNil(t, server.Janitor)
}

func TestSongLength(t *testing.T) {
	assert.Equal(t, 2*time.Second, songLength(1920, 480, 500000))
	assert.Equal(t, time.Duration(0), songLength(1920, 0, 500000))
}
