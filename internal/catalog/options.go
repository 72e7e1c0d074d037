package catalog

import (
	"fmt"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// HardDriveOptions are the values the storage form offers.
type HardDriveOptions struct {
	Types      []string `koanf:"types" json:"types"`
	Capacities []string `koanf:"capacities" json:"capacities"`
	Interfaces []string `koanf:"interfaces" json:"interfaces"`
	Brands     []string `koanf:"brands" json:"brands"`
}

// DisplayOptions are the values the display form offers.
type DisplayOptions struct {
	Sizes        []string `koanf:"sizes" json:"sizes"`
	Resolutions  []string `koanf:"resolutions" json:"resolutions"`
	PanelTypes   []string `koanf:"panel_types" json:"panel_types"`
	RefreshRates []string `koanf:"refresh_rates" json:"refresh_rates"`
	Brands       []string `koanf:"brands" json:"brands"`
}

// Options holds every select list the admin forms use. Create and update
// requests are checked against the same lists.
type Options struct {
	HardDrives HardDriveOptions `koanf:"hard_drives" json:"hard_drives"`
	Displays   DisplayOptions   `koanf:"displays" json:"displays"`
}

func defaults() map[string]any {
	return map[string]any{
		"hard_drives": map[string]any{
			"types":      []string{"SSD", "HDD", "SSHD"},
			"capacities": []string{"128GB", "256GB", "512GB", "1TB", "2TB", "4TB", "8TB"},
			"interfaces": []string{"SATA", "NVMe", "M.2 SATA", "PCIe", "SAS"},
			"brands":     []string{"Samsung", "Western Digital", "Seagate", "Kingston", "Crucial", "Toshiba", "Intel", "SK Hynix"},
		},
		"displays": map[string]any{
			"sizes":         []string{"21.5 inch", "24 inch", "27 inch", "32 inch", "34 inch"},
			"resolutions":   []string{"1920x1080", "2560x1440", "3440x1440", "3840x2160"},
			"panel_types":   []string{"IPS", "VA", "TN", "OLED"},
			"refresh_rates": []string{"60Hz", "75Hz", "144Hz", "165Hz", "240Hz"},
			"brands":        []string{"LG", "Samsung", "Dell", "ASUS", "AOC", "ViewSonic", "MSI", "Gigabyte"},
		},
	}
}

// Default returns the compiled-in option lists.
func Default() *Options {
	opts, err := Load("", nil)
	if err != nil {
		// the compiled-in map always unmarshals
		panic(err)
	}
	return opts
}

// Load returns the default option lists overridden by the YAML file at path.
// Lists present in the file replace the defaults wholesale; an empty path
// keeps the defaults.
func Load(path string, logger *slog.Logger) (*Options, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load default catalog options: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load catalog options %s: %w", path, err)
		}
		if logger != nil {
			logger.Info("loaded catalog options", "path", path)
		}
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("decode catalog options: %w", err)
	}
	return &opts, nil
}
