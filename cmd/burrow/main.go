/*
Command burrow runs an example burrow app keeping notes.

Without a database configured, notes are kept in the sqlite file notes.db.
*/
package main

import (
	"context"
	"embed"
	"io/fs"
	"os"

	"github.com/xy-planning-network/burrow/app"
	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/http/template"
	"github.com/xy-planning-network/burrow/logger"
)

//go:embed views
var views embed.FS

func main() {
	a, err := app.New()
	if err != nil {
		logger.New().Fatal(err.Error(), &logger.LogContext{Error: err})
		os.Exit(1)
	}

	db := a.DB()
	if db == nil {
		db, err = database.Connect(database.CxnConfig{Driver: database.DriverSQLite, URL: "notes.db"}, a.Env(), a.Logger())
		if err != nil {
			a.Logger().Fatal(err.Error(), &logger.LogContext{Error: err})
			os.Exit(1)
		}
		defer db.Close()
	}

	viewsFS, _ := fs.Sub(views, "views")
	p := template.NewParser(
		template.WithFS(viewsFS),
		template.WithFn(template.Env(a.Env())),
	)

	notes, err := newNoteStore(context.Background(), db)
	if err != nil {
		a.Logger().Fatal(err.Error(), &logger.LogContext{Error: err})
		os.Exit(1)
	}

	newNotesController(a.BasePath(), notes, p).routes(a.Router)

	if err := a.Guide(); err != nil {
		a.Logger().Error(err.Error(), &logger.LogContext{Error: err})
		os.Exit(1)
	}
}
