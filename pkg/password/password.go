// Package password hashea y verifica contraseñas con bcrypt.
package password

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Cost factor de trabajo fijo de bcrypt.
const Cost = 12

// MaxBytes longitud máxima que bcrypt acepta.
const MaxBytes = 72

// ErrTooLong contraseña de más de MaxBytes bytes.
var ErrTooLong = errors.New("password exceeds 72 bytes")

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// Hash devuelve el hash bcrypt (con sal) de la contraseña en texto plano.
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}

// Verify compara la contraseña contra el hash almacenado.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyDummy ejecuta una comparación con el mismo costo que Verify cuando el
// usuario no existe, para que ambos caminos del login tarden lo mismo.
func VerifyDummy(plain string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("catalogo-dummy-password"), Cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
}
