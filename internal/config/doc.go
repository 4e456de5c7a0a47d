// Package config loads contactd configuration.
//
// Settings are layered with viper: built-in defaults, then an optional
// contact.yaml, contact.json or contact.toml file, then CONTACT_*
// environment variables. Nested keys map to variables by replacing dots
// with underscores:
//
//	server.addr        CONTACT_SERVER_ADDR
//	inbox.sinks        CONTACT_INBOX_SINKS=log,sqlite
//	inbox.s3.bucket    CONTACT_INBOX_S3_BUCKET
//
// Durations are written as Go duration strings ("15m", "10s").
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
