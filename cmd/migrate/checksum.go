package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"barbershop-booking/internal/pkg/errs"
)

const sumFileName = "atlas.sum"

var errChecksumMismatch = errs.New("migration directory does not match atlas.sum; run `atlas migrate hash`")

// hashDir renders the atlas.sum content for the .sql files of dir. Each file
// hash covers every file before it, so edits to applied files are detected.
func hashDir(dir string) ([]byte, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	running := sha256.New()
	total := sha256.New()
	var lines bytes.Buffer
	for _, path := range names {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.Wrapf(err, "read %s", path)
		}
		name := filepath.Base(path)
		running.Write([]byte(name))
		running.Write(content)
		h := base64.StdEncoding.EncodeToString(running.Sum(nil))

		total.Write([]byte(name))
		total.Write([]byte(h))
		fmt.Fprintf(&lines, "%s h1:%s\n", name, h)
	}
	return []byte("h1:" + base64.StdEncoding.EncodeToString(total.Sum(nil)) + "\n" + lines.String()), nil
}

// verifyChecksum fails fast before atlas is invoked, with a hint instead of
// atlas' exit status. Non-file directory URLs are left to atlas.
func verifyChecksum(dirURL string) error {
	dir, ok := strings.CutPrefix(dirURL, "file://")
	if !ok {
		return nil
	}
	want, err := os.ReadFile(filepath.Join(dir, sumFileName))
	if err != nil {
		return errs.Wrapf(err, "read %s", sumFileName)
	}
	got, err := hashDir(dir)
	if err != nil {
		return err
	}
	if !bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(got)) {
		return errChecksumMismatch
	}
	return nil
}
