package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/marc2bib/format"
	"github.com/lehigh-university-libraries/marc2bib/mapping"
	"github.com/lehigh-university-libraries/marc2bib/tagfunc"

	// Register all format plugins
	_ "github.com/lehigh-university-libraries/marc2bib/format/bibtex"
	_ "github.com/lehigh-university-libraries/marc2bib/format/marcjson"
	_ "github.com/lehigh-university-libraries/marc2bib/format/marcxml"
)

// peekSize is how much input content detection looks at.
const peekSize = 4096

var (
	outputFile  string
	fromFormat  string
	bibKey      string
	profileFile string
	fieldNames  []string
	strict      bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert MARC records to BibTeX",
	Long: `Convert MARCXML or MARC-in-JSON records to BibTeX entries.

Input defaults to stdin, output defaults to stdout. The input format is
detected from the file extension or content unless --from is given.

Records whose citation key cannot be derived (no author or year) are
skipped with a warning, or fail the run with --strict.

Examples:
  # Convert a MARCXML collection
  marc2bib convert records.xml -o refs.bib

  # Explicit key for a single record
  cat record.xml | marc2bib convert --key Hargittai2009

  # Add URL and ISBN fields from the urls profile
  marc2bib convert records.xml --profile urls

  # Request the note field (fails: no built-in note extractor)
  marc2bib convert records.xml --field note`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().StringVar(&fromFormat, "from", "", "Input format (marcxml, marcjson); detected when empty")
	convertCmd.Flags().StringP("type", "t", "", "BibTeX entry type (default: profile entry type or book)")
	convertCmd.Flags().StringVarP(&bibKey, "key", "k", "", "Citation key (single record only)")
	convertCmd.Flags().String("key-style", "", "Citation key style: default or title")
	convertCmd.Flags().StringP("profile", "p", "", "Mapping profile name (e.g., urls)")
	convertCmd.Flags().StringVar(&profileFile, "profile-file", "", "Custom profile YAML file")
	convertCmd.Flags().StringSliceVar(&fieldNames, "field", nil, "Built-in tag function to add (repeatable)")
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Fail on records without a derivable citation key")

	_ = viper.BindPFlag("entry_type", convertCmd.Flags().Lookup("type"))
	_ = viper.BindPFlag("key_style", convertCmd.Flags().Lookup("key-style"))
	_ = viper.BindPFlag("profile", convertCmd.Flags().Lookup("profile"))
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	// Determine input source
	var input io.Reader
	var inputName string

	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = args[0]
	} else {
		input = cmd.InOrStdin()
		inputName = "stdin"
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	parser, err := resolveParser(inputName, data)
	if err != nil {
		return err
	}

	profile, err := loadProfile()
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	funcs, err := buildTagFuncs(profile, fieldNames)
	if err != nil {
		return err
	}

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.BibKey = bibKey
	serializeOpts.TagFuncs = funcs
	serializeOpts.Strict = strict
	serializeOpts.KeyStyle = viper.GetString("key_style")
	if et := viper.GetString("entry_type"); et != "" {
		serializeOpts.EntryType = et
	} else if profile != nil && profile.EntryType != "" {
		serializeOpts.EntryType = profile.EntryType
	}
	if serializeOpts.KeyStyle == "" && profile != nil {
		serializeOpts.KeyStyle = profile.KeyStyle
	}

	serializer, err := format.GetSerializer("bibtex")
	if err != nil {
		return err
	}

	// Parse input
	parseOpts := format.NewParseOptions()
	parseOpts.SourceName = inputName

	records, err := parser.Parse(bytes.NewReader(data), parseOpts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	slog.Info("parsed records", "count", len(records), "format", parser.Name(), "source", inputName)

	// Determine output destination
	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = cmd.OutOrStdout()
	}

	if err := serializer.Serialize(output, records, serializeOpts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}

// resolveParser picks the input parser from --from, the file extension or
// the first bytes of the input.
func resolveParser(inputName string, data []byte) (format.Parser, error) {
	if fromFormat != "" {
		parser, err := format.GetParser(fromFormat)
		if err != nil {
			return nil, fmt.Errorf("unknown source format %q: %w", fromFormat, err)
		}
		return parser, nil
	}

	peek := data
	if len(peek) > peekSize {
		peek = peek[:peekSize]
	}

	filename := ""
	if inputName != "stdin" {
		filename = filepath.Base(inputName)
	}

	f, err := format.DetectFormat(filename, peek)
	if err != nil {
		return nil, fmt.Errorf("detecting input format (use --from): %w", err)
	}
	slog.Debug("detected input format", "format", f.Name())
	return format.GetParser(f.Name())
}

// loadProfile resolves --profile and --profile-file. When both are given the
// file is merged over the named profile.
func loadProfile() (*mapping.Profile, error) {
	var custom *mapping.Profile
	if profileFile != "" {
		p, err := mapping.LoadProfile(profileFile)
		if err != nil {
			return nil, err
		}
		custom = p
	}

	profileName := viper.GetString("profile")
	if profileName == "" {
		return custom, nil
	}

	registry, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	base, ok := registry.Get(profileName)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s (available: %s)", profileName, strings.Join(registry.List(), ", "))
	}
	if custom != nil {
		return mapping.MergeProfiles(base, custom), nil
	}
	return base, nil
}

// buildTagFuncs compiles the profile and adds the built-in tag functions
// requested with --field.
func buildTagFuncs(profile *mapping.Profile, names []string) (tagfunc.Set, error) {
	funcs := tagfunc.Set{}
	if profile != nil {
		compiled, err := profile.TagFuncs()
		if err != nil {
			return nil, err
		}
		funcs = compiled
	}

	known := tagfunc.Known()
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		fn, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unknown field %q (known: %s)", name, strings.Join(known.Names(), ", "))
		}
		funcs[name] = fn
	}
	return funcs, nil
}

// loadRegistry returns the embedded profiles plus the user's profile
// directory. User profiles replace embedded ones of the same name.
func loadRegistry() (*mapping.ProfileRegistry, error) {
	registry, err := mapping.NewProfileRegistry()
	if err != nil {
		return nil, err
	}

	dir := viper.GetString("profiles_dir")
	if dir == "" {
		dir, err = mapping.UserProfileDir()
		if err != nil {
			slog.Debug("no user profile directory", "err", err)
			return registry, nil
		}
	}

	if _, err := os.Stat(dir); err != nil {
		slog.Debug("user profile directory not found", "dir", dir)
		return registry, nil
	}
	if err := registry.LoadFromDirectory(dir); err != nil {
		return nil, fmt.Errorf("loading profiles from %s: %w", dir, err)
	}
	return registry, nil
}
