/*
Package config builds limiters from declarative definitions.

A YAML document names each limiter:

	limiters:
	  api:
	    algorithm: token_bucket
	    capacity: 5
	    rate: 60
	    per: 1m
	  ingest:
	    algorithm: leaky_bucket
	    capacity: 3
	    rate: 1

Rate is expressed over Per (default "1s"), so the api limiter above refills
one token per second. Load reads a file, Parse reads bytes, and Decode
accepts a generic map from another configuration source.

	f, err := config.Load("limits.yaml", logger)
	if err != nil {
		return err
	}
	api, err := f.Build("api", config.Options{Logger: logger})

Every validation failure wraps errors.ErrInvalidConfiguration.
*/
package config
