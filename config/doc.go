/*
Package config loads JSON documents into a single tree of values
and looks values up by dot-separated paths.

	cfg := config.New()
	if _, err := cfg.Load("config/app.json"); err != nil {
		return err
	}

	dsn, err := cfg.Get("database.url")

Loading several documents merges them: later documents override earlier ones key by key,
keeping the keys they do not mention.
Documents with a .yaml or .yml extension are parsed as YAML.
*/
package config
