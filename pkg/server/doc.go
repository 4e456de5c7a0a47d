// Package server serves the contact form over HTTP and WebSocket.
//
// GET / renders the page with a form in its initial state. The thin client
// then dials the socket and each connection gets its own Session, which
// owns one contact.Controller. Events are read by ReadLoop and applied one
// at a time by EventLoop; after each event the whole form fragment is
// re-rendered and sent back tagged with the event's sequence number.
//
// Browsers without JavaScript post the form to contact.PostPath and get a
// full page back. Other programs can submit JSON to APIPath.
//
// # Usage
//
//	srv := server.New(server.DefaultServerConfig(), server.Options{
//	    Logger:    logger,
//	    Submitter: dispatcher,
//	})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Idle sessions are closed by the SessionManager's cleanup loop, and
// Shutdown closes every session before returning.
package server
