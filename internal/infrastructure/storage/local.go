package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/jhoicas/catalogo-admin-api/internal/application/ports"
)

var _ ports.FileStorage = (*LocalDisk)(nil)

// LocalDisk guarda los archivos bajo un directorio raíz y los publica bajo baseURL.
type LocalDisk struct {
	root    string
	baseURL string
}

// NewLocalDisk root relativo se resuelve contra el directorio de trabajo.
func NewLocalDisk(root, baseURL string) (*LocalDisk, error) {
	if root == "" {
		root = "uploads"
	}
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "storage/local: getwd")
		}
		root = filepath.Join(cwd, root)
	}
	return &LocalDisk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root directorio absoluto servido como estático.
func (d *LocalDisk) Root() string { return d.root }

func (d *LocalDisk) abs(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	full := filepath.Join(d.root, clean)
	if !strings.HasPrefix(full, d.root+string(os.PathSeparator)) {
		return "", errors.Errorf("storage/local: clave fuera de la raíz: %s", key)
	}
	return full, nil
}

// ── Escritura ─────────────────────────────────────────────────────────────────

func (d *LocalDisk) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	full, err := d.abs(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "storage/local: mkdir")
	}
	f, err := os.Create(full)
	if err != nil {
		return errors.Wrapf(err, "storage/local: create %s", key)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(full)
		return errors.Wrapf(err, "storage/local: write %s", key)
	}
	return nil
}

// ── Borrado ───────────────────────────────────────────────────────────────────

func (d *LocalDisk) Delete(_ context.Context, key string) error {
	full, err := d.abs(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "storage/local: delete %s", key)
	}
	return nil
}

func (d *LocalDisk) URL(key string) string {
	return d.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}
