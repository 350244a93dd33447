package packager

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// writeArchive packs the published dataset folder into a tar.gz whose
// entries are rooted at <videoID>/.
func writeArchive(path, dir, videoID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close() //nolint:errcheck

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dataset folder: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addArchiveFile(tw, filepath.Join(dir, entry.Name()), videoID+"/"+entry.Name()); err != nil {
			return fmt.Errorf("archive %s: %w", entry.Name(), err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return f.Close()
}

func addArchiveFile(tw *tar.Writer, src, name string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	_, err = io.Copy(tw, f)
	return err
}
