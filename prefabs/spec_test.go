package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// useDir points Dir at a temporary directory for the test.
func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
	return dir
}

func TestLoadTuningEmbedded(t *testing.T) {
	useDir(t)

	spec, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, "default", spec.Name)
	assert.Equal(t, 0.2, spec.Camera.MouseSensitivity)
	assert.Equal(t, 20.0, spec.Camera.MaxPitchDegrees)
	assert.Equal(t, 600.0, spec.Locomotion.ForceMultiplier)
	assert.Equal(t, 1.5, spec.Jump.Impulse)
	assert.Equal(t, 0.6, spec.Jump.Time)
	assert.Equal(t, 45.0, spec.Jump.GroundMaxAngleDegrees)
	assert.Equal(t, -9.81, spec.Physics.Gravity)
	assert.Equal(t, Vec3Spec{-3, 2, -3}, spec.Scene.Avatar.Position)
	assert.Equal(t, colornames.Green, spec.Scene.Floor.Color.RGBA8())
}

func TestLoadTuningDiskOverridesEmbedded(t *testing.T) {
	dir := useDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("name: tweaked\nlocomotion:\n  force_multiplier: 250\n"), 0o644))

	spec, err := LoadTuning("prefabs/" + TuningFile)
	require.NoError(t, err)
	assert.Equal(t, "tweaked", spec.Name)
	assert.Equal(t, 250.0, spec.Locomotion.ForceMultiplier)
	assert.Equal(t, 0.2, spec.Camera.MouseSensitivity, "missing fields take defaults")
}

func TestLoadTuningValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"braking_above_one", "jump:\n  max_braking_factor: 1.5\n"},
		{"negative_air_motion", "jump:\n  air_motion_factor: -0.1\n"},
		{"vertical_ground_angle", "jump:\n  ground_max_angle_degrees: 90\n"},
		{"negative_timestep", "physics:\n  timestep: -1\n"},
		{"negative_spawn_interval", "scene:\n  spawn:\n    interval: -2\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(c.body), 0o644))

			_, err := LoadTuning(path)
			assert.ErrorIs(t, err, ErrInvalidTuning)
		})
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", TuningFile))
	assert.Error(t, err)

	_, err = NewWatcher()
	assert.ErrorIs(t, err, ErrNoPrefabs)
}

func TestLoadTuningMissingFile(t *testing.T) {
	useDir(t)
	_, err := LoadTuning("nope.yaml")
	assert.Error(t, err)
}

func TestLoadBindingsEmbedded(t *testing.T) {
	useDir(t)

	spec, err := LoadBindings("")
	require.NoError(t, err)
	assert.Equal(t, []string{"W", "ArrowUp"}, spec.Actions["Forward"])
	assert.Equal(t, []string{"Space"}, spec.Actions["Jump"])
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    [4]uint8
		wantErr bool
	}{
		{in: "red", want: [4]uint8{255, 0, 0, 255}},
		{in: "'#A6FFE6'", want: [4]uint8{0xA6, 0xFF, 0xE6, 255}},
		{in: "'#00000080'", want: [4]uint8{0, 0, 0, 0x80}},
		{in: "notacolor", wantErr: true},
		{in: "[1, 2]", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var col YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &col)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			r, g, b, a := col.RGBA()
			assert.Equal(t, c.want, [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)})
		})
	}
}

// nextChange waits for the watcher to report one file.
func nextChange(t *testing.T, w *Watcher) string {
	t.Helper()
	var got string
	require.Eventually(t, func() bool {
		name, ok := w.Poll()
		if ok {
			got = name
		}
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	return got
}

func TestWatcherReportsChangedSpecs(t *testing.T) {
	dir := useDir(t)
	w, err := NewWatcher(TuningFile)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, BindingsFile), []byte("actions: {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("name: x\n"), 0o644))

	assert.Equal(t, TuningFile, nextChange(t, w))
	_, ok := w.Poll()
	assert.False(t, ok, "unwatched names are dropped")
}

func TestWatcherFollowsSelectedFiles(t *testing.T) {
	dir := useDir(t)
	other := t.TempDir()
	alt := "prefabs/alt.yaml"
	keys := filepath.Join(other, "keys.yaml")

	w, err := NewWatcher(alt, keys)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("name: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alt.yaml"), []byte("name: alt\n"), 0o644))
	assert.Equal(t, alt, nextChange(t, w))

	require.NoError(t, os.WriteFile(keys, []byte("actions: {}\n"), 0o644))
	assert.Equal(t, keys, nextChange(t, w))

	_, ok := w.Poll()
	assert.False(t, ok)
}

func TestDiskPath(t *testing.T) {
	dir := useDir(t)
	abs := filepath.Join(t.TempDir(), "x.yaml")

	assert.Equal(t, filepath.Join(dir, TuningFile), DiskPath(TuningFile))
	assert.Equal(t, filepath.Join(dir, "alt.yaml"), DiskPath("prefabs/alt.yaml"))
	assert.Equal(t, abs, DiskPath(abs))

	_, ok := ModTime("alt.yaml")
	assert.False(t, ok)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alt.yaml"), []byte("name: alt\n"), 0o644))
	_, ok = ModTime("prefabs/alt.yaml")
	assert.True(t, ok)
}
