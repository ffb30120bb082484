package domain

import "errors"

// Errores sentinela del dominio.
var (
	// ErrEmptyDataset se intentó cargar un dataset sin clientes; el
	// reemplazo total dejaría la base vacía.
	ErrEmptyDataset = errors.New("dataset vacío")
)
