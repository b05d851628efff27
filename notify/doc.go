// Package notify delivers user-facing messages in English or Japanese.
//
//	loc := notify.NewLocalizer("ja")
//	n := notify.NewWriterNotifier(os.Stdout, loc)
//	n.Notify(ctx, notify.Info(notify.MsgTableUpdated))
package notify
