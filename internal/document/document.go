// Package document loads an OpenAPI JSON document into a yaml.Node tree and
// writes it back, keeping a backup of the original file.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrNotObject = errors.New("document root is not a JSON object")

// Document is a parsed OpenAPI document and the file it was read from.
type Document struct {
	Path string
	Root *yaml.Node

	raw     []byte
	modTime time.Time
	perm    fs.FileMode
}

// Load reads and parses the JSON document at path.
func Load(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fail to stat file: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fail to read file: %w", err)
	}
	root, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("fail to parse %s: %w", path, err)
	}

	return &Document{
		Path:    path,
		Root:    root,
		raw:     raw,
		modTime: info.ModTime(),
		perm:    info.Mode().Perm(),
	}, nil
}

// BackupPath is where Save copies the original file before overwriting it.
func (d *Document) BackupPath() string {
	return fmt.Sprintf("%s.backup.%d", d.Path, d.modTime.Unix())
}

// Backup writes the original bytes next to the document and syncs them to
// disk. The backup carries the original modification time.
func (d *Document) Backup() (path string, err error) {
	path = d.BackupPath()
	if err = writeFileSync(path, d.raw, d.perm); err != nil {
		return "", fmt.Errorf("fail to write backup: %w", err)
	}
	if err = os.Chtimes(path, d.modTime, d.modTime); err != nil {
		return "", fmt.Errorf("fail to set backup modification time: %w", err)
	}
	return
}

// Save backs the original file up and then overwrites it with the encoded
// tree. Nothing is overwritten unless the backup was written.
func (d *Document) Save() (backup string, err error) {
	b, err := Encode(d.Root)
	if err != nil {
		return "", fmt.Errorf("fail to encode document: %w", err)
	}
	if backup, err = d.Backup(); err != nil {
		return "", err
	}
	if err = writeFileSync(d.Path, b, d.perm); err != nil {
		return backup, fmt.Errorf("fail to write document: %w", err)
	}
	return
}

func writeFileSync(path string, b []byte, perm fs.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
