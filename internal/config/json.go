package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the optional JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		LogFile        string   `json:"log_file"`
		ReservedTags   []string `json:"reserved_tags"`
		StoreErrorMode string   `json:"store_error_mode"`
	} `json:"app,omitempty"`

	WebDAV struct {
		URL               string   `json:"url"`
		Username          string   `json:"username"`
		Password          string   `json:"password"`
		RequestTimeout    Duration `json:"request_timeout"`
		ConditionalWrites *bool    `json:"conditional_writes,omitempty"`
		ConflictRetries   int      `json:"conflict_retries"`
		AllowedOrigins    []string `json:"allowed_origins"`
	} `json:"webdav,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Tracing struct {
		Exporter     string  `json:"exporter"`
		OTLPEndpoint string  `json:"otlp_endpoint"`
		SampleRate   float64 `json:"sample_rate"`
	} `json:"tracing,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogFile:        jsonCfg.App.LogFile,
			ReservedTags:   jsonCfg.App.ReservedTags,
			StoreErrorMode: jsonCfg.App.StoreErrorMode,
		},
		WebDAV: WebDAV{
			URL:               jsonCfg.WebDAV.URL,
			Username:          jsonCfg.WebDAV.Username,
			Password:          jsonCfg.WebDAV.Password,
			RequestTimeout:    time.Duration(jsonCfg.WebDAV.RequestTimeout),
			ConditionalWrites: jsonCfg.WebDAV.ConditionalWrites,
			ConflictRetries:   jsonCfg.WebDAV.ConflictRetries,
			AllowedOrigins:    jsonCfg.WebDAV.AllowedOrigins,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
		Tracing: Tracing{
			Exporter:     jsonCfg.Tracing.Exporter,
			OTLPEndpoint: jsonCfg.Tracing.OTLPEndpoint,
			SampleRate:   jsonCfg.Tracing.SampleRate,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
