package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types so durations can be written as "15s" in a config file.
type StructuredJSONConfig struct {
	App struct {
		EncryptionKey string `json:"encryption_key"`
		LogPath       string `json:"log_path"`
	} `json:"app,omitempty"`

	Firebase struct {
		APIKey           string   `json:"api_key"`
		ProjectID        string   `json:"project_id"`
		Collection       string   `json:"collection"`
		AuthBaseURL      string   `json:"auth_base_url"`
		TokenURL         string   `json:"token_url"`
		FirestoreBaseURL string   `json:"firestore_base_url"`
		RequestTimeout   Duration `json:"request_timeout"`
		PollInterval     Duration `json:"poll_interval"`
	} `json:"firebase,omitempty"`

	Cache struct {
		Path     string `json:"path"`
		Disabled bool   `json:"disabled"`
	} `json:"cache,omitempty"`
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
			EncryptionKey: jsonCfg.App.EncryptionKey,
			LogPath:       jsonCfg.App.LogPath,
		},
		Firebase: Firebase{
			APIKey:           jsonCfg.Firebase.APIKey,
			ProjectID:        jsonCfg.Firebase.ProjectID,
			Collection:       jsonCfg.Firebase.Collection,
			AuthBaseURL:      jsonCfg.Firebase.AuthBaseURL,
			TokenURL:         jsonCfg.Firebase.TokenURL,
			FirestoreBaseURL: jsonCfg.Firebase.FirestoreBaseURL,
			RequestTimeout:   time.Duration(jsonCfg.Firebase.RequestTimeout),
			PollInterval:     time.Duration(jsonCfg.Firebase.PollInterval),
		},
		Cache: Cache{
			Path:     jsonCfg.Cache.Path,
			Disabled: jsonCfg.Cache.Disabled,
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
