// Package main provides the formstate CLI.
//
// formstate validates a YAML data document against a YAML ruleset:
//
//	formstate -data order.yaml -rules rules.yaml
//	formstate -data order.yaml -rules rules.yaml -set customer=Ada -dump
//
// The exit code is non-zero when any field is invalid.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"formstate/form"
	"formstate/rules"
	"formstate/utils"
)

// overrides collects repeatable -set path=value flags.
type overrides []string

func (o *overrides) String() string {
	return strings.Join(*o, ",")
}

func (o *overrides) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("override %q is not of the form path=value", v)
	}
	*o = append(*o, v)
	return nil
}

func main() {
	dataPath := flag.String("data", "", "YAML document holding the initial form data")
	rulesPath := flag.String("rules", "", "YAML ruleset to validate against")
	dump := flag.Bool("dump", false, "dump the final data tree")
	var sets overrides
	flag.Var(&sets, "set", "override a value before validating, path=value (repeatable)")
	flag.Parse()

	if err := run(*dataPath, *rulesPath, sets, *dump); err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		os.Exit(1)
	}
}

func run(dataPath, rulesPath string, sets overrides, dump bool) error {
	if dataPath == "" || rulesPath == "" {
		return errors.New("-data and -rules are required")
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data file %s: %w", dataPath, err)
	}
	var initial map[string]any
	if err := yaml.Unmarshal(raw, &initial); err != nil {
		return fmt.Errorf("failed to parse data YAML: %w", err)
	}

	rs, err := rules.LoadFile(rulesPath)
	if err != nil {
		return err
	}
	validator, err := rules.New(rs)
	if err != nil {
		return err
	}

	f := form.New(initial, validator)
	ctx := context.Background()

	for _, kv := range sets {
		path, value := utils.Unpack2(strings.SplitN(kv, "=", 2))
		f.SetValue(ctx, path, value, &form.SetValueOptions{Validate: form.Bool(false)})
	}

	ok := f.Validate(ctx)
	if dump {
		spew.Dump(f.Values())
	}
	if ok {
		fmt.Println("valid")
		return nil
	}

	all := f.AllErrors()
	paths := make([]string, 0, len(all))
	for path := range all {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		for _, msg := range all[path] {
			fmt.Printf("%s: %s\n", path, msg)
		}
	}
	return fmt.Errorf("%d invalid field(s)", len(all))
}
