// Package resp decodes the response envelope of the todo API:
//
//	{
//	  "status": 200,        // body status, 200 on success
//	  "message": "ok",
//	  "result": [...],      // payload
//	  "total": 25,          // list endpoints only
//	  "detail": [...]       // validation errors, {loc, msg}
//	}
//
// Decode turns transport and body failures into an *Exception carrying the
// HTTP status, an ecode business code and any per-field messages:
//
//	env, err := resp.Decode(res.StatusCode, res.Body)
//	if err != nil {
//	    var ex *resp.Exception
//	    if errors.As(err, &ex) && ex.Code == ecode.ParamErr { ... }
//	}
//	var tasks []Task
//	err = env.Into(&tasks)
package resp
