package service

import "errors"

var (
	// ErrForbidden indica que el usuario autenticado no es el dueño del recurso.
	ErrForbidden = errors.New("forbidden")
)

// Owned es un recurso con un dueño fijo.
type Owned interface {
	OwnerID() string
}

// AuthorizeMutation permite modificar el recurso solo a su dueño.
// La existencia del recurso se comprueba antes de llamar a esta regla.
func AuthorizeMutation(callerID string, resource Owned) error {
	if callerID == "" || resource.OwnerID() != callerID {
		return ErrForbidden
	}
	return nil
}
