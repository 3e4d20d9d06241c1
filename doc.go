/*
Package burrow is a small MVC toolkit for web applications.

The root package holds what every other package shares:
the sentinel errors, the [Fault] an error handler renders,
the [Environment] an app runs in and the context keys middlewares stash values under.

Subpackages provide the pieces of an app:

  - config: a JSON (or YAML) configuration tree with dotted-path lookup
  - database: a thin wrapper over a SQL connection
  - model: active-record style CRUD over a single table keyed by "id"
  - http/router: a regular expression router dispatching to handlers
  - http/controller: action tables, redirects and request input parsing
  - http/view: JSON and HTML views over a bag of named values
  - app: wiring of all the above into a running web server
*/
package burrow
