package host

import "github.com/vango-dev/notify/pkg/notify"

// Success shows a success notification.
//
//	sess.Success("Changes saved!")
func (s *Session) Success(message string, opts ...notify.Option) string {
	return s.Notify(message, append(opts, notify.WithType(notify.TypeSuccess))...)
}

// Error shows an error notification.
//
//	sess.Error("Failed to delete item")
func (s *Session) Error(message string, opts ...notify.Option) string {
	return s.Notify(message, append(opts, notify.WithType(notify.TypeError))...)
}

// Warning shows a warning notification.
//
//	sess.Warning("This action cannot be undone")
func (s *Session) Warning(message string, opts ...notify.Option) string {
	return s.Notify(message, append(opts, notify.WithType(notify.TypeWarning))...)
}

// Info shows an info notification.
//
//	sess.Info("New features available")
func (s *Session) Info(message string, opts ...notify.Option) string {
	return s.Notify(message, append(opts, notify.WithType(notify.TypeInfo))...)
}
