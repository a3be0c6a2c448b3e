package config

import "github.com/spf13/viper"

// setDefaults sets the configuration defaults used when a value is absent
// from both the TOML file and the environment, mirroring the teacher's
// setDefaults (internal/config/defaults.go) narrowed to this program's
// two sections.
func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", string(StoreBackendMemory))
	v.SetDefault("store.cache_size", 1024)
	v.SetDefault("store.rent_lamports_per_byte", 1)
}
