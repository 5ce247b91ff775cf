package iris

/*------------------------------------------------------------------
 *
 * Purpose:	NVRAMFile is the concrete byte-addressable non-volatile
 *		region Store.StoreAll/LoadAll read and write on a host
 *		simulation: a single on-disk file, flock-guarded so two
 *		irisd processes never interleave writes to it.
 *
 *---------------------------------------------------------------*/

import (
	"os"

	"golang.org/x/sys/unix"
)

// NVRAMFile is a host-file-backed stand-in for the board's non-volatile
// memory region. Size is the maximum byte size StoreAll is allowed to use;
// attempts to persist more are refused (see ErrNVRAMOverflow).
type NVRAMFile struct {
	Size int

	file *os.File
}

// OpenNVRAMFile opens (creating if necessary) the file at path as an
// NVRAMFile of the given size, taking an exclusive flock for the lifetime
// of the returned handle.
func OpenNVRAMFile(path string, size int) (*NVRAMFile, error) {
	var f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, err
	}

	return &NVRAMFile{Size: size, file: f}, nil
}

// Close releases the flock and closes the underlying file.
func (n *NVRAMFile) Close() error {
	_ = unix.Flock(int(n.file.Fd()), unix.LOCK_UN)
	return n.file.Close()
}

// Store writes store's contents to the start of the file via Store.StoreAll.
func (n *NVRAMFile) Store(store *Store) error {
	if _, err := n.file.Seek(0, 0); err != nil {
		return err
	}
	if err := store.StoreAll(n.file, n.Size); err != nil {
		return err
	}
	return n.file.Sync()
}

// Load reads the file's contents into store via Store.LoadAll.
func (n *NVRAMFile) Load(store *Store) error {
	if _, err := n.file.Seek(0, 0); err != nil {
		return err
	}
	return store.LoadAll(n.file)
}
