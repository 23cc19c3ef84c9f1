package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aquanqa/aquanqa-cli/internal/table"
)

// tabularExts are the archive members LoadZIP considers.
var tabularExts = map[string]bool{".xlsx": true, ".xlsm": true, ".csv": true, ".txt": true, ".tsv": true}

// LoadZIP loads the spreadsheet inside a ZIP archive. When member is empty the
// archive must hold exactly one tabular file; otherwise member names it.
func LoadZIP(zipPath, member string, opts Options) (*table.Table, error) {
	if member != "" && !tabularExts[strings.ToLower(path.Ext(member))] {
		return nil, eris.Wrapf(ErrUnsupportedFormat, "zip member %q", member)
	}
	tmp, err := os.MkdirTemp("", "aquanqa-zip-*")
	if err != nil {
		return nil, eris.Wrap(err, "zip: create temp dir")
	}
	defer os.RemoveAll(tmp) //nolint:errcheck

	var extracted string
	if member != "" {
		extracted, err = ExtractZIPFile(zipPath, member, tmp)
	} else {
		extracted, err = ExtractZIPSingle(zipPath, tmp)
	}
	if err != nil {
		return nil, err
	}
	return Load(extracted, opts)
}

// TabularMembers lists the tabular files of an archive in archive order. macOS
// resource forks and directories are skipped.
func TabularMembers(zipPath string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	var names []string
	for _, f := range tabularFiles(r.File) {
		names = append(names, f.Name)
	}
	return names, nil
}

// ExtractZIPFile extracts a single file from a ZIP archive by name.
// Returns the path to the extracted file.
func ExtractZIPFile(zipPath, fileName, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.Name == fileName {
			return extractZIPEntry(f, destDir)
		}
	}

	return "", eris.Errorf("zip: file %q not found in archive", fileName)
}

// ExtractZIPSingle extracts the only tabular file of an archive.
func ExtractZIPSingle(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: open archive")
	}
	defer r.Close() //nolint:errcheck

	files := tabularFiles(r.File)
	if len(files) != 1 {
		return "", eris.Errorf("zip: expected exactly 1 spreadsheet, got %d", len(files))
	}

	return extractZIPEntry(files[0], destDir)
}

func tabularFiles(all []*zip.File) []*zip.File {
	var files []*zip.File
	for _, f := range all {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		base := path.Base(f.Name)
		if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, "._") {
			continue
		}
		if tabularExts[strings.ToLower(path.Ext(base))] {
			files = append(files, f)
		}
	}
	return files
}

// extractZIPEntry extracts a single zip.File to the destination directory.
func extractZIPEntry(f *zip.File, destDir string) (string, error) {
	// Sanitize against zip slip
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("zip: illegal path %q (zip slip attempt)", f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "zip: create parent directory")
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "zip: open entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "zip: create file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "zip: write file")
	}

	return destPath, nil
}
