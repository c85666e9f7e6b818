package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	md2pub "github.com/alnah/go-md2pub"
	"github.com/alnah/go-md2pub/internal/assets"
	"github.com/alnah/go-md2pub/internal/config"
	"github.com/alnah/go-md2pub/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input file specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// filePermissions for the written HTML output.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// run executes one conversion end to end.
func run(flags *convertFlags, fs *flag.FlagSet, positional []string) error {
	if flags.version {
		fmt.Println("md2pub", Version)
		return nil
	}
	if !flags.quiet {
		warnUnknownEnvVars(os.Stderr)
	}

	env := loadEnvConfig()
	cfg, err := loadConfig(flags.config, env.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(env, cfg)
	mergeFlags(flags, fs, cfg)

	if flags.listThemes {
		return listThemes(cfg.ThemeDir)
	}

	if len(positional) == 0 {
		printUsage(os.Stderr)
		return ErrNoInput
	}
	inputPath := positional[0]
	if err := fileutil.ValidateMarkdownPath(inputPath); err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	converter, err := buildConverter(cfg, flags.quiet)
	if err != nil {
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = fileutil.OutputPath(inputPath)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Converting %s (theme %s)\n", inputPath, themeName(cfg))
	}

	result, err := converter.Convert(context.Background(), md2pub.Input{
		Markdown:   string(data),
		OutputName: outputPath,
	})
	if err != nil {
		return err
	}

	backup, err := fileutil.BackupExisting(outputPath, time.Now())
	if err != nil {
		return err
	}
	if backup != "" && !flags.quiet {
		fmt.Printf("Backed up existing output to %s\n", backup)
	}

	if err := os.WriteFile(outputPath, result.HTML, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Words: %d, reading time: %d min, footnotes: %d\n",
			result.WordCount, result.Minutes, len(result.Footnotes))
	}
	if !flags.quiet {
		fmt.Printf("Created %s\n", outputPath)
	}
	return nil
}

// loadConfig resolves and loads the config file. An explicit path (flag
// or env) must exist; otherwise a missing config is not an error.
func loadConfig(flagPath, envPath string) (*config.Config, error) {
	explicit := flagPath
	if explicit == "" {
		explicit = envPath
	}
	path, err := config.Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overlays explicitly set CLI flags on the config. Changed()
// distinguishes an explicit --cite=false from the flag's default, so a
// config file value is only overridden when the user asked for it.
func mergeFlags(flags *convertFlags, fs *flag.FlagSet, cfg *config.Config) {
	if fs.Changed("theme") {
		cfg.Theme = flags.theme
	}
	if fs.Changed("theme-dir") {
		cfg.ThemeDir = flags.themeDir
	}
	if fs.Changed("color") {
		cfg.Color = flags.color
	}
	if fs.Changed("font") {
		cfg.Font = flags.font
	}
	if fs.Changed("font-size") {
		cfg.FontSize = flags.fontSize
	}
	if fs.Changed("code-theme") {
		cfg.CodeTheme = flags.codeTheme
	}
	if fs.Changed("legend") {
		cfg.Legend = flags.legend
	}
	if fs.Changed("cite") {
		cfg.Cite = &flags.cite
	}
	if fs.Changed("count") {
		cfg.Count = &flags.count
	}
	if fs.Changed("no-mac") {
		mac := !flags.noMac
		cfg.MacCodeBlock = &mac
	}
	if fs.Changed("line-numbers") {
		cfg.LineNumbers = &flags.lineNumbers
	}
	if fs.Changed("keep-title") {
		cfg.KeepTitle = &flags.keepTitle
	}
	if fs.Changed("dark") {
		if flags.dark {
			cfg.ThemeMode = md2pub.ThemeModeDark
		} else {
			cfg.ThemeMode = md2pub.ThemeModeLight
		}
	}
}

// buildConverter translates the merged config into converter options.
func buildConverter(cfg *config.Config, quiet bool) (*md2pub.Converter, error) {
	renderOpts := md2pub.DefaultRenderOptions()
	if cfg.Legend != "" {
		renderOpts.Legend = cfg.Legend
	}
	if cfg.ThemeMode != "" {
		renderOpts.ThemeMode = cfg.ThemeMode
	}
	if cfg.Cite != nil {
		renderOpts.CiteStatus = *cfg.Cite
	}
	if cfg.Count != nil {
		renderOpts.CountStatus = *cfg.Count
	}
	if cfg.MacCodeBlock != nil {
		renderOpts.MacCodeBlock = *cfg.MacCodeBlock
	}
	if cfg.LineNumbers != nil {
		renderOpts.ShowLineNumber = *cfg.LineNumbers
	}
	if cfg.KeepTitle != nil {
		renderOpts.KeepTitle = *cfg.KeepTitle
	}

	opts := []md2pub.Option{
		md2pub.WithRenderOptions(renderOpts),
	}
	if cfg.Theme != "" {
		opts = append(opts, md2pub.WithTheme(cfg.Theme))
	}
	if cfg.ThemeDir != "" {
		opts = append(opts, md2pub.WithThemeDir(cfg.ThemeDir))
	}
	if cfg.Color != "" {
		opts = append(opts, md2pub.WithPrimaryColor(cfg.Color))
	}
	if cfg.Font != "" {
		opts = append(opts, md2pub.WithFontFamily(cfg.Font))
	}
	if cfg.FontSize != "" {
		opts = append(opts, md2pub.WithFontSize(cfg.FontSize))
	}
	if cfg.CodeTheme != "" {
		opts = append(opts, md2pub.WithCodeTheme(cfg.CodeTheme))
	}
	if !quiet {
		opts = append(opts, md2pub.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
		}))
	}
	return md2pub.NewConverter(opts...)
}

func themeName(cfg *config.Config) string {
	if cfg.Theme != "" {
		return cfg.Theme
	}
	return md2pub.DefaultTheme
}

// listThemes prints the available theme names.
func listThemes(themeDir string) error {
	resolver, err := assets.NewThemeResolver(themeDir)
	if err != nil {
		return err
	}
	for _, name := range resolver.ThemeNames() {
		fmt.Println(name)
	}
	return nil
}
