/*
The middleware package defines what a middleware is in burrow and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- LogRequest
- RateLimit
- RequestID

A router applies them to every request with OnEveryRequest;
package app sets up this chain by default:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.CORS(origins...),
		middleware.ForceHTTPS(env),
		middleware.RateLimit(middleware.NewVisitors(perSecond, burst)),
	}

ForceHTTPS and RateLimit are only included when configured.
*/
package middleware
