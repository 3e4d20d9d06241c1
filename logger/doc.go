/*
Package logger provides logging functionality to a burrow app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
A [ColorLogger] initialized with [LogLevelWarn]
only emits messages through [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal].

Log messages emitted by [ColorLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2024/04/28 15:55:21 [WARN] router/error.go:25 'NotFound: Not Found (404)' log_context: {"error":"NotFound: Not Found (404)","fault":{"code":404,"kind":"NotFound"},"request":{"id":"9b1c...","method":"GET","path":"/nope"}}

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger],
which additionally reports the error in a [LogContext] to Sentry
for messages logged at [LogLevelWarn] and above.
Faults mapping to a status below 500 are client mistakes and are not reported.
*/
package logger
