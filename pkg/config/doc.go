// Package config provides layered option handling for the LakeSoul connector factory.
//
// Table connectors are configured from three layers, merged in increasing
// precedence:
//
//  1. process-wide defaults, loaded once at start from lakesoul-conf.yaml
//  2. session settings of the host engine (time zone, S3 endpoint and credentials)
//  3. per-statement options attached to the CREATE TABLE statement
//
// # Key Features
//
// - Options: a flat string map, the shape every downstream consumer expects
// - Merge: key-by-key overlay, inputs are never mutated, unknown keys survive
// - SessionOverrides: folds the session time zone and storage settings into
// ordinary key/value pairs so Merge stays a plain overlay
// - LoadGlobal: viper-backed loader for the process defaults file
// - Load: YAML loading with ${VAR_NAME} environment substitution
//
// # Usage
//
//	defaults, err := config.LoadGlobal("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	session, err := config.SessionOverrides(hostSession)
//	if err != nil {
//		return err
//	}
//
//	effective := config.Merge(defaults, session, statementOptions)
//	path, _ := effective.Get(config.KeyCatalogPath)
//
// # Process Defaults File
//
//	# $LAKESOUL_CONF_DIR/lakesoul-conf.yaml
//	s3:
//	  endpoint: http://minio:9000
//	  path-style-access: true
//	timezone: UTC
//
// Nested keys are flattened with '.', so the file above yields the options
// s3.endpoint, s3.path-style-access and timezone.
package config
