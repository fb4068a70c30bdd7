package snapshot

import (
	"os"
	"path/filepath"

	"dogworld-server/internal/game"
	"dogworld-server/internal/players"
)

// Save captures the current state and writes it atomically: encode to
// a temp file in the same directory as path, fsync, then rename over
// path. A save failure leaves the previous file, if any, untouched.
func Save(path string, g *game.Game, reg *players.Registry) error {
	data, err := Marshal(Capture(g, reg))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Load reads and decodes the snapshot at path, then applies it to g
// and reg. If the file is missing, Load is a no-op returning nil: a
// fresh server with a configured but not-yet-created state file
// starts with empty state. Any decode error rejects the whole
// snapshot without mutating g or reg.
func Load(path string, g *game.Game, reg *players.Registry) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	snap, err := Unmarshal(data)
	if err != nil {
		return err
	}
	return Apply(g, reg, snap)
}
