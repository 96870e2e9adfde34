/*
 * main.go, part of gomolymod.
 *
 * Copyright 2025 The gomolymod authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Command gomolymod builds a ball-and-stick scene description from a
//molecular structure file and a hole-template document.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	molymod "github.com/molbuild/gomolymod"
	"github.com/molbuild/gomolymod/scenejson"
)

var version = "devel"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		molPath   string
		holesPath string
		confPath  string
		outPath   string
		verbose   bool
	)

	root := &cobra.Command{
		Use:           "gomolymod",
		Short:         "ball-and-stick molecular model builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	build := &cobra.Command{
		Use:   "build",
		Short: "build a scene from a structure file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr)
			set := molymod.DefaultSettings()
			if confPath != "" {
				if _, err := toml.DecodeFile(confPath, set); err != nil {
					return fmt.Errorf("loading config %s: %w", confPath, err)
				}
			}
			if verbose || set.Debug {
				logger.SetLevel(log.DebugLevel)
			}

			top, err := molymod.XYZRead(molPath)
			if err != nil {
				return err
			}
			if err := molymod.InferBonds(top); err != nil {
				return err
			}
			logger.Info("structure read", "file", molPath, "atoms", top.Len(), "bonds", len(top.Bonds()))

			holes, err := scenejson.ReadHoles(holesPath)
			if err != nil {
				return err
			}
			builder, err := molymod.NewBuilder(set, holes, logger)
			if err != nil {
				return err
			}
			res, err := builder.Build(top)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return scenejson.FromResult(res).Write(out)
		},
	}
	build.Flags().StringVarP(&molPath, "molecule", "m", "", "structure file (.xyz or .xyz.gz)")
	build.Flags().StringVar(&holesPath, "holes", "", "hole-template JSON document")
	build.Flags().StringVarP(&confPath, "config", "c", "", "TOML settings file (defaults used when omitted)")
	build.Flags().StringVarP(&outPath, "out", "o", "", "output scene file (stdout when omitted)")
	if err := build.MarkFlagRequired("molecule"); err != nil {
		return err
	}
	if err := build.MarkFlagRequired("holes"); err != nil {
		return err
	}

	root.AddCommand(build)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gomolymod", version)
		},
	})

	return root.ExecuteContext(ctx)
}
