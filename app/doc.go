/*
Package app initializes and manages a burrow app with sane defaults.

# App

The main entrypoint to package app is the [App] type, constructed with [New].
[New] reads configuration, builds a logger, connects to a database if one is configured,
and prepares a [*router.Router] with the default middleware stack.

[*App.Guide] begins the web server.
By default, [*App.Guide] listens on [DefaultPort] (:3000).
Stop that web server with [*App.Shutdown], by cancelling the context passed to [WithContext],
or by sending a signal [*App.Guide] listens for.

# Configuration

A developer configures a burrow app through environment variables and JSON or YAML config files.
Environment variables may be set in a file called ".env"
found at the same directory the application is executed from.
Environment variables override the values of config files.

Here are the available environment variables.
  - BASE_PATH: the path prefix every route is served under
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONFIG_FILES: a comma-separated list of config files, loaded in order
  - CORS_ORIGINS: a comma-separated list of origins allowed to make cross-origin requests
  - DATABASE_DRIVER: either postgres or sqlite; without it or DATABASE_URL, no database is connected
  - DATABASE_HOST, DATABASE_NAME, DATABASE_PASSWORD, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_USER: parts of a postgres connection string
  - DATABASE_URL: the fully-qualified connection string, or the sqlite database file
  - ENVIRONMENT: the environment the application is running in; cf. [burrow.Environment]
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - PORT: the port the application should listen on; default: :3000
  - SENTRY_DSN: report errors to Sentry
  - SERVER_IDLE_TIMEOUT, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT: timeouts as understood by [time.ParseDuration]

Here are the available config file keys.

	{
	  "server": {
	    "basePath": "/notes-app",
	    "port": ":3000",
	    "corsOrigins": ["https://example.com"],
	    "forceHTTPS": true,
	    "rateLimit": {"perSecond": 5, "burst": 20}
	  },
	  "database": {
	    "driver": "sqlite",
	    "url": "notes.db",
	    "maxOpenCxns": 1
	  },
	  "views": {"dir": "views"}
	}
*/
package app
