/*
Package router dispatches HTTP requests to handlers by matching regular expressions against the request path.

A [*Router] holds an ordered table of routes.
Each route pairs an optional HTTP method with a pattern and a [Handler].
Registering a route prepends it to the table,
so the most recently registered route is checked first.

When a request comes in, the [*Router] normalizes its path:
the base path is stripped, the query string is dropped and leading and trailing slashes are trimmed.
A request for "/app/users/42/?tab=notes" with the base path "/app" is matched as "users/42".
The first route whose pattern matches the normalized path and whose method matches the request wins.
Its [Handler] is called with the pattern's capture groups, in order.

Patterns are unanchored; use "^" and "$" to match the whole path.
A leading slash on a pattern is dropped, so "/users/(\d+)" and "users/(\d+)" match the same paths.

Every error a [Handler] returns, a panic it raises,
and the not found condition when no route matches,
is handed to a single [ErrorHandler] as a [*burrow.Fault].
[DefaultErrorHandler] writes the fault's status and a plain text body.
A [Handler] that has already written its response and wants dispatch to stop returns [burrow.ErrHalt].
*/
package router
