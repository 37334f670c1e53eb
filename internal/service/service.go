// Package service holds the item operations.
//
// Handlers call it with validated input. It talks to the storage layer
// only through repository.ItemRepository and translates storage
// not-found errors into API errors.
package service
