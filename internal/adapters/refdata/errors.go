package refdata

import "errors"

var (
	// ErrLoadData indicates the occupation data file could not be read
	// or parsed.
	ErrLoadData = errors.New("failed to load occupation data")

	// ErrMissingOccupationCode indicates a record without an occupation
	// code in the data file.
	ErrMissingOccupationCode = errors.New("occupation record missing occupation_code")

	// ErrOccupationNotFound indicates the requested occupation code is
	// not in the loaded data set.
	ErrOccupationNotFound = errors.New("occupation not found")
)
