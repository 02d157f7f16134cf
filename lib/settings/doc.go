// Package settings implements the read/write engine of pSettings: a settings
// provider that stores the user scoped settings of any number of scope groups
// in a single portable file next to the application.
//
// Key Components:
//
//   - ISettingsProvider: Reads and writes batches of settings of one scope
//     group. Every batch reloads the settings file and every write saves the
//     complete document, so independent providers can share one file.
//
//   - Group: The host side of a scope group. It holds the declarations and
//     current values and offers Get, Set, Reload, Save and Reset.
//
//   - Apply: Attaches a provider to a list of groups and reloads them.
//
// Failure policy:
//
//	Nothing in this package stops the host application. A corrupt settings
//	file is read as an empty one, a value that cannot be decoded falls back to
//	its default and a file that cannot be written is logged and counted but
//	not reported by Write. Values that cannot be encoded are skipped and
//	returned as an aggregated error.
//
// Metrics:
//
//	Providers count reads, writes, resets and failures per file format.
//	WriteMetrics exposes the counters in Prometheus text format.
//
// Usage:
//
//	conf := common.DefaultConfig(common.FormatJSON)
//	provider, err := settings.NewProvider(conf, nil)
//	if err != nil {
//		return err
//	}
//
//	window := settings.NewGroup("MainWindow",
//		common.Declaration{Name: "Size", DefaultValue: "800,600", IsUserScoped: true},
//		common.Declaration{Name: "Theme", DefaultValue: "light", IsUserScoped: true, IsRoaming: true},
//	)
//	settings.Apply(provider, window)
//
//	_ = window.Set("Theme", "dark")
//	err = window.Save()
package settings
