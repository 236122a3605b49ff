// Package server is the HTTP front end: a chi-routed page server that
// streams server-rendered HTML to clients through the view buffer.
//
// Pages are registered as functions that produce render.PageData for a
// request. Each request gets its own viewbuf.Writer draining to the
// response, so page content reaches the client in flushed sections and
// a render error before the first flush still yields a clean 500.
//
//	app := server.New(nil)
//	app.RegisterPage("/", func(r *http.Request) (render.PageData, error) {
//	    return render.PageData{
//	        Title: "Home",
//	        Body:  vdom.Div(vdom.H1(vdom.Text("Hello"))),
//	    }, nil
//	})
//	log.Fatal(app.Run())
//
// The Handler method returns a plain http.Handler for mounting inside
// an existing router.
package server
