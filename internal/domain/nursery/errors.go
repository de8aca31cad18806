package nursery

import "errors"

var ErrNurseryNotFound = errors.New("nursery not found")
