package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// memberPriority ranks archive entries: an explicit member wins, then .aco files.
func memberPriority(name, member string) int {
	if member != "" {
		if name == member || strings.HasSuffix(name, "/"+member) {
			return 100
		}
		return 0
	}
	if strings.EqualFold(path.Ext(name), ".aco") {
		return 90
	}
	return 0
}

// pickMember chooses the entry to open from the archive's file names.
func pickMember(names []string, member string) (string, error) {
	var best string
	var candidates []string

	for _, name := range names {
		if memberPriority(name, member) == 0 {
			continue
		}
		candidates = append(candidates, name)
		if best == "" {
			best = name
		}
	}

	switch {
	case len(candidates) == 0 && member != "":
		return "", fmt.Errorf("file '%s' not found in archive (found: %v)", member, names)
	case len(candidates) == 0:
		return "", fmt.Errorf("no .aco files found in archive (found: %v)", names)
	case len(candidates) > 1 && member == "":
		return "", fmt.Errorf("multiple .aco files in archive, choose one with --member (found: %v)", candidates)
	}

	return best, nil
}

// extractMember returns the contents of one archive entry.
func extractMember(data []byte, format Format, member string) ([]byte, error) {
	if format == FormatZip {
		return extractFromZip(data, member)
	}
	return extractFromTar(data, format, member)
}

func extractFromZip(data []byte, member string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var names []string
	files := make(map[string]*zip.File)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
		files[f.Name] = f
	}

	name, err := pickMember(names, member)
	if err != nil {
		return nil, err
	}

	rc, err := files[name].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in archive: %w", name, err)
	}
	defer rc.Close()

	out, err := readLimited(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", name, err)
	}
	return out, nil
}

func extractFromTar(data []byte, format Format, member string) ([]byte, error) {
	// First pass lists the entries, second pass extracts the chosen one.
	names, err := walkTar(data, format, func(string, io.Reader) (bool, error) { return false, nil })
	if err != nil {
		return nil, err
	}

	name, err := pickMember(names, member)
	if err != nil {
		return nil, err
	}

	var out []byte
	_, err = walkTar(data, format, func(entry string, r io.Reader) (bool, error) {
		if entry != name {
			return false, nil
		}
		var readErr error
		out, readErr = readLimited(r)
		return true, readErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", name, err)
	}
	return out, nil
}

// walkTar calls visit for each regular file until visit reports done.
// It returns the names of the files visited.
func walkTar(data []byte, format Format, visit func(name string, r io.Reader) (bool, error)) ([]string, error) {
	sr, err := newStreamReader(data, format)
	if err != nil {
		return nil, err
	}
	defer sr.Close()

	tr := tar.NewReader(sr)
	var names []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		names = append(names, header.Name)
		done, err := visit(header.Name, tr)
		if err != nil {
			return nil, err
		}
		if done {
			return names, nil
		}
	}
}
