// Package config provides TOML-based configuration for Pacsea: general
// and worker-tuning settings, theme colors, and keybindings, each loaded
// from its own file in the platform config directory.
package config

import "time"

// Settings is the decoded shape of settings.conf.
type Settings struct {
	General    GeneralSettings    `toml:"general"`
	Workers    WorkerSettings     `toml:"workers"`
	Preflight  PreflightSettings  `toml:"preflight"`
}

// GeneralSettings controls top-level process behavior.
type GeneralSettings struct {
	LogLevel   string `toml:"log_level"`
	DryRun     bool   `toml:"dry_run"`
	CacheDir   string `toml:"cache_dir"`
}

// WorkerSettings tunes the debounce and polling intervals used by the
// mediator's tick handler and the long-lived worker pool.
type WorkerSettings struct {
	SearchDebounce     Duration `toml:"search_debounce"`
	PKGBUILDDebounce   Duration `toml:"pkgbuild_debounce"`
	AddBatchDebounce   Duration `toml:"add_batch_debounce"`
	CacheFlushDebounce Duration `toml:"cache_flush_debounce"`
	StatusPollInterval Duration `toml:"status_poll_interval"`
	NewsPollInterval   Duration `toml:"news_poll_interval"`
	HTTPTimeout        Duration `toml:"http_timeout"`
	RingPrefetchRadius int      `toml:"ring_prefetch_radius"`
	PKGBUILDCacheCap   int      `toml:"pkgbuild_cache_capacity"`
}

// PreflightSettings holds the toast and sort-menu timeouts and a
// free-disk threshold for the summary/alert UI.
type PreflightSettings struct {
	ToastTimeout      Duration `toml:"toast_timeout"`
	SortMenuTimeout   Duration `toml:"sort_menu_timeout"`
	MinFreeDiskBytes  int64    `toml:"min_free_disk_bytes"`
}

// DefaultSettings returns Settings pre-populated with the values named
// across the design notes: a 100ms PKGBUILD debounce distinct from the
// longer cache-flush and add-batch debounces, a 30-row prefetch radius,
// and a 10s toast timeout.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			LogLevel: "info",
			DryRun:   false,
			CacheDir: "",
		},
		Workers: WorkerSettings{
			SearchDebounce:     Duration{250 * time.Millisecond},
			PKGBUILDDebounce:   Duration{100 * time.Millisecond},
			AddBatchDebounce:   Duration{300 * time.Millisecond},
			CacheFlushDebounce: Duration{2 * time.Second},
			StatusPollInterval: Duration{5 * time.Second},
			NewsPollInterval:   Duration{10 * time.Minute},
			HTTPTimeout:        Duration{8 * time.Second},
			RingPrefetchRadius: 30,
			PKGBUILDCacheCap:   200,
		},
		Preflight: PreflightSettings{
			ToastTimeout:     Duration{10 * time.Second},
			SortMenuTimeout:  Duration{4 * time.Second},
			MinFreeDiskBytes: 200 * 1024 * 1024,
		},
	}
}
