// Package config resolves memmap settings from flags, environment,
// an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"

	"memmap/report"
	"memmap/usage"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MEMMAP_TOP.
const EnvPrefix = "MEMMAP"

// Config holds the resolved settings of one run
type Config struct {
	PID      int
	Name     string
	Counter  string
	Top      int
	Output   string
	Regions  bool
	Addr     string
	MapsOnly bool
	NoColor  bool
	ProcRoot string
	Debug    bool
}

// RegisterFlags defines every setting on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.IntP("pid", "p", 0, "Process ID to inspect")
	flags.StringP("name", "n", "", "Inspect the lowest PID whose comm or exe basename matches")
	flags.StringP("counter", "c", usage.DefaultCounter, "smaps counter to rank by (Rss, Pss, Swap, Private_Dirty, ...)")
	flags.IntP("top", "t", 10, "Number of groups to show, 0 for all")
	flags.StringP("output", "o", report.FormatTable, "Output format: "+strings.Join(report.Formats, ", "))
	flags.Bool("regions", false, "Also list every region")
	flags.String("addr", "", "Show the region containing this hex address")
	flags.Bool("maps-only", false, "Read /proc/<pid>/maps instead of smaps (no counters)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.String("proc-root", "/proc", "procfs mount point")
	flags.String("config", "", "YAML config file")
	flags.Bool("debug", false, "Enable debug output")
}

// Load merges defaults, the config file, environment and flags, in
// increasing order of precedence. A .env file in the working directory is
// loaded into the environment first if present.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		PID:      v.GetInt("pid"),
		Name:     v.GetString("name"),
		Counter:  v.GetString("counter"),
		Top:      v.GetInt("top"),
		Output:   strings.ToLower(v.GetString("output")),
		Regions:  v.GetBool("regions"),
		Addr:     v.GetString("addr"),
		MapsOnly: v.GetBool("maps-only"),
		NoColor:  v.GetBool("no-color"),
		ProcRoot: v.GetString("proc-root"),
		Debug:    v.GetBool("debug"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that do not depend on the target process.
func (c *Config) Validate() error {
	switch {
	case c.PID < 0:
		return fmt.Errorf("invalid pid %d", c.PID)
	case c.PID == 0 && c.Name == "":
		return errors.New("one of --pid or --name is required")
	case c.PID != 0 && c.Name != "":
		return errors.New("--pid and --name are mutually exclusive")
	case c.Top < 0:
		return fmt.Errorf("--top must not be negative, got %d", c.Top)
	case !slices.Contains(report.Formats, c.Output):
		return fmt.Errorf("unknown output format %q, want one of %s", c.Output, strings.Join(report.Formats, ", "))
	}

	if _, err := c.Address(); err != nil {
		return err
	}
	return nil
}

// Address parses Addr, which may carry a 0x prefix. It returns nil when
// no address was given.
func (c *Config) Address() (*uint64, error) {
	if c.Addr == "" {
		return nil, nil
	}
	s := strings.TrimPrefix(strings.ToLower(c.Addr), "0x")
	addr, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", c.Addr, err)
	}
	return &addr, nil
}
