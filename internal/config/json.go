package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mfintake/intakecli/internal/flagx"
	"github.com/mfintake/intakecli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SuccessBannerDelay  timex.Duration `json:"success_banner_delay"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. With no flag present the function returns without
// touching cfg. Read or unmarshal errors panic (caller may recover).
//
// Zero-valued JSON fields leave the corresponding Config fields alone, so a
// partial file only overrides what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.SuccessBannerDelay.Duration != 0 {
		cfg.SuccessBannerDelay = time.Duration(jc.SuccessBannerDelay.Duration)
	}
}
