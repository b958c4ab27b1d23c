package goldprice

import "errors"

var (
	ErrParse     = errors.New("price response could not be parsed")
	ErrNoSources = errors.New("no price sources configured")
)
