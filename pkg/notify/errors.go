package notify

import "errors"

// ErrUnknownTimerControl is returned by ParseTimerControl for a mode string
// that is neither "pause-resume" nor "reset-restart".
var ErrUnknownTimerControl = errors.New("notify: unknown timer control mode")
