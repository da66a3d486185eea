// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-overload/pkg/object"
	"github.com/petar-djukic/go-overload/pkg/overload"
)

// newDemoCmd creates the "demo" command.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Install foo(), foo(x) and foo(x, y) on a class and call them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), cmd.OutOrStdout(), viper.GetString("parser"))
		},
	}
}

// runDemo installs the demo overloads and prints the result of calling
// foo with zero to three arguments. The three-argument call matches no
// definition.
func runDemo(ctx context.Context, w io.Writer, parser string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	inst, err := overload.New(overload.Config{
		Parser:         parser,
		SourceOptional: true,
		Logger:         slog.Default(),
	})
	if err != nil {
		return err
	}

	class := object.NewClass("A", nil)
	res, err := inst.Install(ctx, class, func(d *overload.Definer) {
		d.Def("foo", func() string { return "foo()" })
		d.Def("foo", func(x any) string { return fmt.Sprintf("foo(%v)", x) })
		d.Def("foo", func(x, y any) string { return fmt.Sprintf("foo(%v, %v)", x, y) })
	})
	if err != nil {
		return err
	}
	for _, def := range res.Definitions {
		fmt.Fprintf(w, "defined %s at %s\n", def.Signature(), def.Location)
	}

	obj := class.New()
	calls := [][]object.Value{{}, {1}, {1, 2}, {1, 2, 3}}
	for _, callArgs := range calls {
		v, err := obj.Send("foo", callArgs...)
		if err != nil {
			fmt.Fprintf(w, "A.new.foo%v => error: %v\n", callArgs, err)
			continue
		}
		fmt.Fprintf(w, "A.new.foo%v => %v\n", callArgs, v)
	}
	return nil
}
