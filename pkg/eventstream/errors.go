package eventstream

import "errors"

// ErrNilHarvestEvent indicates a nil harvest event payload was provided to a publisher.
var ErrNilHarvestEvent = errors.New("nil harvest event")
