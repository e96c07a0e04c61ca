package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/unitrackerhq/unitracker/pkg/types"
)

// Transfer moves the full relational state in and out of the live store,
// in two interchangeable shapes: a snapshot (byte copy of the store file)
// and a document (a JSON tree of all rows, see document.go). The file copy
// is the sole commit point for imports; validation happens on a separate
// connection so the live store is never mutated by a rejected candidate.
type Transfer struct {
	s *Store
}

// ExportSnapshot byte-copies the live store file to path. Fails when path
// resolves to the live file itself. The WAL is checkpointed first so the
// copy carries every committed write.
func (t *Transfer) ExportSnapshot(path string) error {
	same, err := sameFile(t.s.path, path)
	if err != nil {
		return err
	}
	if same {
		return types.ErrSameFile
	}
	if _, err := t.s.exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing before snapshot: %w", err)
	}
	return copyFile(t.s.path, path)
}

// ImportSnapshot validates the candidate store at path and, on success,
// byte-copies it over the live store file. A failing validation probe
// leaves the live store untouched.
func (t *Transfer) ImportSnapshot(path string) error {
	same, err := sameFile(t.s.path, path)
	if err != nil {
		return err
	}
	if same {
		return types.ErrSameFile
	}
	if err := validateSnapshot(path); err != nil {
		return err
	}
	return t.replaceLive(path)
}

// validateSnapshot opens path under a temporary connection and probes
// every required column of every required table with a SELECT. The probe
// connection is torn down whether or not the candidate passes.
func validateSnapshot(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return fmt.Errorf("opening snapshot connection: %w", err)
	}
	defer db.Close()

	for _, table := range tableOrder {
		probe := fmt.Sprintf("SELECT %s FROM %s LIMIT 1",
			strings.Join(tableColumns[table], ", "), table)
		rows, err := db.Query(probe)
		if err != nil {
			return fmt.Errorf("%w: probing table %s: %v", types.ErrValidation, table, err)
		}
		rows.Close()
	}
	return nil
}

// replaceLive closes the live handle, copies src over the live store file,
// and reopens. Replacing the file under a closed handle is as atomic as
// the filesystem's copy primitive allows.
func (t *Transfer) replaceLive(src string) error {
	if err := t.s.db.Close(); err != nil {
		return fmt.Errorf("closing live store: %w", err)
	}
	// WAL sidecars of the old live file would shadow the copied data.
	os.Remove(t.s.path + "-wal")
	os.Remove(t.s.path + "-shm")

	copyErr := copyFile(src, t.s.path)
	if err := t.s.reopen(); err != nil {
		return err
	}
	return copyErr
}

// sameFile reports whether two paths resolve to the same file, comparing
// inodes when both exist and absolute paths otherwise.
func sameFile(a, b string) (bool, error) {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(ia, ib), nil
	}

	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

// copyFile byte-copies src to dst, truncating any existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
