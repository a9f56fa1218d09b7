package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/asmviz/seppairs/pkg/errors"
)

// fileConfig mirrors the decompose flags in a TOML file:
//
//	links = "links.tsv"
//	output = "pairs.tsv"
//	dir = "dumps"
//	export_svg = true
type fileConfig struct {
	Links     string `toml:"links"`
	Output    string `toml:"output"`
	Dir       string `toml:"dir"`
	ExportSVG bool   `toml:"export_svg"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %q not found", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %q", path)
	}
	return cfg, nil
}

// apply fills options from the config file. A flag set on the command line
// wins over the file value.
func (o *decomposeOpts) apply(cmd *cobra.Command, cfg fileConfig) {
	flags := cmd.Flags()
	if !flags.Changed("links") && cfg.Links != "" {
		o.links = cfg.Links
	}
	if !flags.Changed("output") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if !flags.Changed("dir") && cfg.Dir != "" {
		o.dir = cfg.Dir
	}
	if !flags.Changed("export-svg") {
		o.exportSVG = cfg.ExportSVG
	}
}
