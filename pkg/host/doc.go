// Package host serves notifications to browser clients over a WebSocket.
//
// A Server upgrades connections on /ws and runs one Session per client.
// Server-side code shows notifications through the Session API; the session
// emits "notify:toast" events to the client and routes the client's
// interaction events (hover, keydown, action clicks) back into the
// notification controllers.
//
// Every session runs a single event loop goroutine. All controller
// mutations happen on that goroutine: the reader enqueues decoded client
// events onto it, and controllers re-enter it through their dispatch
// function when timers expire or actions settle.
//
// # Usage
//
//	srv := host.NewServer(
//		host.WithAddr(":8080"),
//		host.WithOnConnect(func(s *host.Session) {
//			s.Notify("Welcome back",
//				notify.WithType(notify.TypeSuccess),
//				notify.WithDuration(5*time.Second),
//			)
//		}),
//	)
//	if err := srv.Run(context.Background()); err != nil {
//		slog.Error("server stopped", "error", err)
//	}
//
// The server also mounts /healthz and /metrics (Prometheus).
package host
