package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCapacityExceeded  = errors.New("capacidad de la celda excedida")
	ErrInactiveCell      = errors.New("celda de almacenamiento inactiva")
	ErrCellNotEmpty      = errors.New("la celda todavía tiene contenido")
	ErrInvalidState      = errors.New("el estado del documento no permite la operación")
	ErrEmptyDocument     = errors.New("el documento no tiene posiciones")
	ErrMissingLocation   = errors.New("posición sin celda de destino asignada")
	ErrPartialShipment   = errors.New("no se pudo despachar el documento completo")
)
