package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spicery/rule-lexer/pkg/lexer"
)

type options struct {
	Input     string
	Output    string
	Rules     string
	MakeRules bool
	Trace     bool
}

// lexingError marks failures of the input rather than of the setup.
type lexingError struct {
	err error
}

func (e lexingError) Error() string {
	return e.err.Error()
}

func (e lexingError) Unwrap() error {
	return e.err
}

func run(opts options, stdin io.Reader, stdout io.Writer) (err error) {
	if opts.MakeRules {
		data, marshalErr := lexer.DefaultRulesFile().Marshal()
		if marshalErr != nil {
			return marshalErr
		}
		_, err = stdout.Write(data)
		return err
	}

	rules, err := loadRules(opts.Rules)
	if err != nil {
		return err
	}

	input, err := readInput(opts.Input, stdin)
	if err != nil {
		return err
	}

	output := stdout
	if opts.Output != "" {
		file, createErr := os.Create(opts.Output)
		if createErr != nil {
			return errors.Wrapf(createErr, "error creating output file '%s'", opts.Output)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "error closing output file '%s'", opts.Output)
			}
		}()
		output = file
	}

	lx := lexer.New(rules)
	if opts.Trace {
		steps, lexErr := lx.Trace(input)
		for _, step := range steps {
			if err := writeJSON(output, step); err != nil {
				return err
			}
		}
		if lexErr != nil {
			return lexingError{lexErr}
		}
		return nil
	}

	tokens, lexErr := lx.Lex(input)
	if lexErr != nil {
		// Output the tokens found before the error.
		var unrecognized *lexer.UnrecognizedInputError
		if errors.As(lexErr, &unrecognized) {
			tokens = unrecognized.Tokens
		}
	}
	for _, token := range tokens {
		log.WithFields(logrus.Fields{
			"kind": token.Kind,
			"text": token.Text,
		}).Debug("Token")
		if err := writeJSON(output, token); err != nil {
			return err
		}
	}
	if lexErr != nil {
		return lexingError{lexErr}
	}
	return nil
}

func readInput(filename string, stdin io.Reader) (string, error) {
	if filename == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errors.Wrap(err, "error reading from stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", errors.Wrapf(err, "error reading file '%s'", filename)
	}
	return string(data), nil
}

// writeJSON writes v as a single line of JSON.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "JSON encoding error")
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
