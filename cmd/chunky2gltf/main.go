// Copyright (C) 2022-2023  Luke Shumaker <lukeshu@lukeshu.com>
//
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/container"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/export"
	"github.com/lukeshu-labs/chunky2gltf/lib/chunky/textui"
)

type logLevelFlag struct{ logrus.Level }

func (lvl *logLevelFlag) Type() string { return "loglevel" }
func (lvl *logLevelFlag) Set(str string) error {
	var err error
	lvl.Level, err = logrus.ParseLevel(str)
	return err
}

func main() {
	verbosity := logLevelFlag{Level: logrus.InfoLevel}
	var archivePath, outDir string
	var templates []string
	var debugDump bool

	argparser := &cobra.Command{
		Use:   "chunky2gltf --archive FILE --out DIR [flags]",
		Short: "Export chunky template archives to glTF/PNG",

		SilenceErrors: true, // main() handles this after .ExecuteContext() returns
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" && !debugDump {
				return fmt.Errorf("--out is required unless --debug-dump is set")
			}

			logger := logrus.New()
			logger.SetLevel(verbosity.Level)
			ctx := dlog.WithLogger(cmd.Context(), dlog.WrapLogrus(logger))

			grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
				EnableSignalHandling: true,
			})
			grp.Go("main", func(ctx context.Context) error {
				src, err := container.OpenMapped(archivePath)
				if err != nil {
					return err
				}
				defer src.Close()

				archive, err := container.Open(src)
				if err != nil {
					return err
				}

				if debugDump {
					dumper := spew.NewDefaultConfig()
					dumper.DisablePointerAddresses = true
					for _, entry := range archive.Templates() {
						tmpl, err := export.LoadTemplate(ctx, archive, entry)
						if err != nil {
							return err
						}
						dumper.Dump(tmpl)
					}
					return nil
				}

				return export.ExportAll(ctx, archive, outDir, templates)
			})
			return grp.Wait()
		},
	}
	argparser.PersistentFlags().Var(&verbosity, "verbosity", "set the log verbosity (panic, fatal, error, warn, info, debug, trace)")
	argparser.Flags().StringVar(&archivePath, "archive", "", "path to the chunky archive file")
	argparser.Flags().StringVar(&outDir, "out", "", "directory to write .glb/.png files into")
	argparser.Flags().StringArrayVar(&templates, "template", nil, "export only the named template (repeatable; default: all templates)")
	argparser.Flags().BoolVar(&debugDump, "debug-dump", false, "dump each resolved template's decoded records instead of exporting")
	if err := argparser.MarkFlagRequired("archive"); err != nil {
		panic(err)
	}
	if err := argparser.MarkFlagFilename("archive"); err != nil {
		panic(err)
	}

	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
