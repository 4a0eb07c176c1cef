// pkg/msys2/archive.go
package msys2

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// installFromArchive downloads the msys2-base tarball and extracts it under
// the parent of the configured root. The tarball's top-level directory is
// "msys64", so extraction lands exactly at the root for the default layout.
func (in *Installer) installFromArchive(ctx context.Context) error {
	archivePath := filepath.Join(in.config.CachePath, "downloads", filepath.Base(in.config.ArchiveURL))
	defer in.remove(archivePath)

	in.logger.Printf("Downloading MSYS2 base archive from %s", in.config.ArchiveURL)
	if err := in.downloadFile(ctx, in.config.ArchiveURL, archivePath); err != nil {
		return fmt.Errorf("downloading archive: %w", err)
	}

	dest := filepath.Dir(in.config.Root)
	in.logger.Printf("Extracting base archive into %s", dest)
	if err := in.extractArchive(archivePath, dest); err != nil {
		return fmt.Errorf("extracting archive: %w", err)
	}

	if _, err := os.Stat(in.config.Root); err != nil {
		return fmt.Errorf("archive did not produce %s: %w", in.config.Root, err)
	}

	in.logger.Printf("✓ MSYS2 extracted at %s", in.config.Root)
	return nil
}

// extractArchive handles both .tar.xz and .tar.zst base distributions
func (in *Installer) extractArchive(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader
	switch {
	case strings.HasSuffix(src, ".tar.xz"):
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return fmt.Errorf("xz init: %w", err)
		}
		reader = xzReader
	case strings.HasSuffix(src, ".tar.zst"):
		zstdReader, err := zstd.NewReader(f)
		if err != nil {
			return fmt.Errorf("zstd init: %w", err)
		}
		defer zstdReader.Close()
		reader = zstdReader
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(src))
	}

	tarReader := tar.NewReader(reader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dest, header.Name)

		// Guard against path traversal out of the destination
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("invalid archive path: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			os.MkdirAll(target, 0755)
		case tar.TypeReg:
			os.MkdirAll(filepath.Dir(target), 0755)
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return err
			}
			outFile.Close()
		case tar.TypeSymlink:
			os.MkdirAll(filepath.Dir(target), 0755)
			os.Remove(target)
			os.Symlink(header.Linkname, target)
		}
	}
	return nil
}
