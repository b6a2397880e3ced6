package translate

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	h2kerr "github.com/canmet-energy/h2ktohpxml/errors"
)

// Options are the recognized translation options decoded from the
// configuration mapping. Unknown keys are permitted: processor-specific keys
// (the weather.* group) are read through the Config accessor instead.
type Options struct {
	// TranslationMode selects the ruleset; empty defaults to SOC.
	TranslationMode string `koanf:"translation_mode"`

	// AddTestWall injects one synthetic wall segment. Non-production hook
	// for reference/validation workflows.
	AddTestWall bool `koanf:"add_test_wall"`
}

// Config is the read-only accessor handed to processors for their optional
// keys and auxiliary reference data lookups.
type Config interface {
	String(path string) string
	Exists(path string) bool
}

// decodeConfig wraps the raw configuration mapping and decodes the
// recognized options. A nil mapping is an empty configuration, never an
// error; malformed option values become ConfigurationErrors.
func decodeConfig(raw map[string]any) (Options, *koanf.Koanf, error) {
	k := koanf.New(".")
	if raw != nil {
		if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
			return Options{}, nil, h2kerr.NewConfigurationError("", err.Error())
		}
	}

	var opts Options
	if err := k.UnmarshalWithConf("", &opts, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:     "koanf",
			Result:      &opts,
			ErrorUnused: false,
		},
	}); err != nil {
		return Options{}, nil, h2kerr.NewConfigurationError("", err.Error())
	}
	return opts, k, nil
}
