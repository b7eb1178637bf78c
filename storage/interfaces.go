package storage

import (
	"errors"

	"github.com/go-gota/gota/dataframe"
)

// ErrNoData is returned by a ProductSource that has nothing to load.
var ErrNoData = errors.New("storage: no cleaned product data")

// ProductSource is the interface any cleaned-data loader must satisfy.
type ProductSource interface {
	Load() (dataframe.DataFrame, error)
	Close() error
}
