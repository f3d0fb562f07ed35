package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spicery/rule-lexer/pkg/lexer"
)

const version = "0.1.0"

var log = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rule-lexer",
	Short: "Tokenize text with ordered regular expression rules",
	Long: `rule-lexer splits its input into tokens using an ordered list of rules.
Each rule is a delimited regular expression, a token kind and an optional
transform. The first rule matching at the current position wins.

The lexer outputs one JSON token object per line.

Examples:
  rule-lexer < source.txt                              # Default rules, stdin to stdout
  rule-lexer --input source.txt --output tokens.json   # Read from file, write to file
  rule-lexer --rules custom.yaml --input source.txt    # Use custom rules
  rule-lexer --make-rules > custom.yaml                # Start a rules file from the defaults
  echo "x = 1" | rule-lexer --trace                    # Show skipped matches too`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(optionsFromConfig(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var lexErr lexingError
		if errors.As(err, &lexErr) && viper.GetBool("exit0") {
			// With --exit0, exit normally despite the error.
			os.Exit(0)
		}
		log.WithError(err).Error("rule-lexer failed")
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	flags := rootCmd.Flags()
	flags.String("input", "", "Input file (defaults to stdin)")
	flags.String("output", "", "Output file (defaults to stdout)")
	flags.String("rules", "", "YAML rules file (defaults to the built-in rules)")
	flags.Bool("make-rules", false, "Write the default rules as YAML and exit")
	flags.Bool("trace", false, "Output every match, including skipped ones")
	flags.Bool("exit0", false, "Exit with code 0 even on lexing errors (suppress stderr)")
	flags.BoolP("debug", "D", false, "Enable debug messages")
	if err := viper.BindPFlags(flags); err != nil {
		log.WithError(err).Fatal("Unable to bind flags")
	}
	rootCmd.SetErr(os.Stderr)
}

// initConfig reads settings from RULE_LEXER_* environment variables.
func initConfig() {
	viper.SetEnvPrefix("rule_lexer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	log.SetOutput(os.Stderr)
	if viper.GetBool("debug") {
		log.SetLevel(logrus.DebugLevel)
	}
}

func optionsFromConfig() options {
	return options{
		Input:     viper.GetString("input"),
		Output:    viper.GetString("output"),
		Rules:     viper.GetString("rules"),
		MakeRules: viper.GetBool("make-rules"),
		Trace:     viper.GetBool("trace"),
	}
}

// loadRules returns the rule set named by path, or the defaults.
func loadRules(path string) (*lexer.RuleSet, error) {
	if path == "" {
		rules := lexer.DefaultRuleSet()
		log.WithField("rules", rules.Len()).Debug("Using default rules")
		return rules, nil
	}

	file, err := lexer.LoadRulesFile(path)
	if err != nil {
		return nil, err
	}
	rules, err := file.RuleSet(lexer.DefaultTransforms())
	if err != nil {
		return nil, errors.Wrapf(err, "error applying rules from '%s'", path)
	}
	log.WithFields(logrus.Fields{
		"file":  path,
		"rules": rules.Len(),
	}).Debug("Loaded rules file")
	return rules, nil
}
