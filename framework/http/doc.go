// Package http provides the small request and response helpers used by the
// container inspector.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	shared := req.Query("shared")     // query string value
//	all    := req.All()               // map[string]string of the query
//	name   := req.RouteParam("name")  // chi route param
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(405, "Method not allowed.")
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
package http
