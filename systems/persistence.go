package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/arena-predict/config"
	"github.com/quasilyte/gdata"
)

const predictionSettingsKey = "prediction"

// SavedPrediction represents the player-tunable prediction settings stored on disk
type SavedPrediction struct {
	ErrorDecayRate     float32 `json:"errorDecayRate"`
	HardErrorThreshold float32 `json:"hardErrorThreshold"`
	ReplayWindow       int     `json:"replayWindow"`
	Verbose            bool    `json:"verbose"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadPredictionSettings loads settings from disk. It returns nil when nothing
// is saved or persistence is unavailable.
func LoadPredictionSettings() (*SavedPrediction, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(predictionSettingsKey)
	if err != nil {
		log.Printf("Warning: Could not load prediction settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var saved SavedPrediction
	if err := json.Unmarshal(data, &saved); err != nil {
		log.Printf("Warning: Could not parse saved prediction settings: %v", err)
		return nil, err
	}
	return &saved, nil
}

// SavePredictionSettings saves settings to disk
func SavePredictionSettings(s *SavedPrediction) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize prediction settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(predictionSettingsKey, data); err != nil {
		log.Printf("Warning: Could not save prediction settings: %v", err)
		return err
	}
	return nil
}

// CurrentPredictionSettings captures the tunables from the live config.
func CurrentPredictionSettings(p cfg.PredictionConfig, d cfg.DebugConfig) *SavedPrediction {
	return &SavedPrediction{
		ErrorDecayRate:     p.ErrorDecayRate,
		HardErrorThreshold: p.HardErrorThreshold,
		ReplayWindow:       p.ReplayWindow,
		Verbose:            d.Verbose,
	}
}

// ApplyPredictionSettings copies saved values into the config. Out-of-range
// values are ignored so a bad file cannot stall corrections or disable replay.
func ApplyPredictionSettings(p *cfg.PredictionConfig, d *cfg.DebugConfig, saved *SavedPrediction) {
	if saved == nil {
		return
	}

	if saved.ErrorDecayRate > 0 && saved.ErrorDecayRate <= 1 {
		p.ErrorDecayRate = saved.ErrorDecayRate
	}
	if saved.HardErrorThreshold > p.SoftErrorThreshold {
		p.HardErrorThreshold = saved.HardErrorThreshold
	}
	if saved.ReplayWindow > 0 && saved.ReplayWindow <= p.CommandBackup {
		p.ReplayWindow = saved.ReplayWindow
	}
	d.Verbose = saved.Verbose
}
