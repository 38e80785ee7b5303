package config

import (
	"github.com/spf13/pflag"
)

// Flags holds configuration values bound to a command-line flag set. Values
// are only meaningful after the flag set has been parsed.
type Flags struct {
	fs  *pflag.FlagSet
	cfg StructuredConfig

	conditionalWrites bool
}

// BindFlags registers every configuration flag on fs.
//
// Flags:
//
//	-c/--config json file path with configs
//	--webdav-url WebDAV directory URL
//	--webdav-username Basic-Auth user
//	--webdav-password Basic-Auth password
//	--request-timeout WebDAV request timeout (e.g., "30s"); 0 disables it
//	--conditional-writes use If-Match on index writes
//	--conflict-retries index write retries after a precondition failure
//	--allowed-origins origins the host grants network permission for
//	-d/--db local database DSN
//	--log-file rotating client log file
//	--reserved-tags extra reserved tag names
//	--store-errors local-store error policy (best-effort|propagate)
//	--sync-interval background sync interval (e.g., "5m")
//	--trace-exporter span exporter (none|stdout|otlp)
//	--otlp-endpoint OTLP collector host:port
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVarP(&f.cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	fs.StringVar(&f.cfg.WebDAV.URL, "webdav-url", "", "WebDAV directory URL")
	fs.StringVar(&f.cfg.WebDAV.Username, "webdav-username", "", "WebDAV user name")
	fs.StringVar(&f.cfg.WebDAV.Password, "webdav-password", "", "WebDAV password")
	fs.DurationVar(&f.cfg.WebDAV.RequestTimeout, "request-timeout", 0, "WebDAV request timeout (e.g., 30s)")
	fs.BoolVar(&f.conditionalWrites, "conditional-writes", true, "Use conditional index writes")
	fs.IntVar(&f.cfg.WebDAV.ConflictRetries, "conflict-retries", 0, "Index write retries after a conflict")
	fs.StringSliceVar(&f.cfg.WebDAV.AllowedOrigins, "allowed-origins", nil, "Origins granted network permission")

	fs.StringVarP(&f.cfg.Storage.DB.DSN, "db", "d", "", "Local database DSN")

	fs.StringVar(&f.cfg.App.LogFile, "log-file", "", "Client log file")
	fs.StringSliceVar(&f.cfg.App.ReservedTags, "reserved-tags", nil, "Additional reserved tag names")
	fs.StringVar(&f.cfg.App.StoreErrorMode, "store-errors", "", "Local store error policy (best-effort|propagate)")

	fs.DurationVar(&f.cfg.Workers.SyncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")

	fs.StringVar(&f.cfg.Tracing.Exporter, "trace-exporter", "", "Span exporter (none|stdout|otlp)")
	fs.StringVar(&f.cfg.Tracing.OTLPEndpoint, "otlp-endpoint", "", "OTLP collector endpoint")

	return f
}

// Config returns the values collected from the parsed flag set. Flags that
// were not set on the command line keep their zero value so they never
// override other sources.
func (f *Flags) Config() *StructuredConfig {
	cfg := f.cfg
	if f.fs != nil && f.fs.Changed("conditional-writes") {
		v := f.conditionalWrites
		cfg.WebDAV.ConditionalWrites = &v
	}

	return &cfg
}
