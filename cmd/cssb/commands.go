package main

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssb/selector"
	"cssb/state"
)

// runBuild assembles a compound selector from command line flags. Fragments
// are applied in the canonical order.
func runBuild(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	sel := selector.New()

	var err error
	if v := cmd.String("element"); len(v) > 0 {
		if sel, err = sel.Element(v); err != nil {
			return err
		}
	}
	if v := cmd.String("id"); len(v) > 0 {
		if sel, err = sel.ID(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("class") {
		if sel, err = sel.Class(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("attr") {
		if sel, err = sel.Attr(v); err != nil {
			return err
		}
	}
	for _, v := range cmd.StringSlice("pseudo-class") {
		if sel, err = sel.PseudoClass(v); err != nil {
			return err
		}
	}
	if v := cmd.String("pseudo-element"); len(v) > 0 {
		if sel, err = sel.PseudoElement(v); err != nil {
			return err
		}
	}

	if sel.Len() == 0 {
		return errors.New("no fragments specified, nothing to build")
	}

	env.Log.Debug("Built selector", zap.Int("fragments", sel.Len()), zap.String("text", sel.Stringify()))

	fmt.Println(sel.Stringify())
	return nil
}

// runCheck parses every selector argument and prints its normalized form
// with a per-fragment breakdown. All arguments are processed even when some
// fail - errors are accumulated and reported together.
func runCheck(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("no selectors given, nothing to check")
	}

	p := selector.NewParser(env.Log)

	var errs error
	for _, arg := range args {
		sel, err := p.Parse(arg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		fmt.Println(sel.Stringify())
		if simple, ok := sel.(selector.Simple); ok {
			for _, f := range simple.Fragments() {
				fmt.Printf("  %-14s %s\n", f.Kind, f.Value)
			}
		}
	}
	return errs
}

// runCombine parses selector arguments and folds them left to right with the
// requested combinator.
func runCombine(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)

	args := cmd.Args().Slice()
	if len(args) < 2 {
		return errors.New("at least two selectors are required")
	}

	comb := selector.Combinator(cmd.String("combinator"))

	p := selector.NewParser(env.Log)

	var result selector.Selector
	for i, arg := range args {
		sel, err := p.Parse(arg)
		if err != nil {
			return fmt.Errorf("unable to parse selector %q: %w", arg, err)
		}
		if i == 0 {
			result = sel
			continue
		}
		result = selector.Combine(result, comb, sel)
	}

	env.Log.Debug("Combined selectors", zap.Int("count", len(args)), zap.String("combinator", string(comb)))

	fmt.Println(result.Stringify())
	return nil
}
