package atlas

import "errors"

var errPlayerNotFound = errors.New("player not found")
