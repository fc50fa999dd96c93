package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dtroode/quicksnatch-server/internal/catalog"
	"github.com/dtroode/quicksnatch-server/internal/config"
	"github.com/dtroode/quicksnatch-server/internal/model"
	storage "github.com/dtroode/quicksnatch-server/internal/storage/minio"
)

func main() {
	cobra.CheckErr(newRootCmd(afero.NewOsFs(), connectStorage).Execute())
}

// storageFactory opens the bucket level descriptors are uploaded to.
type storageFactory func(ctx context.Context) (model.Storage, error)

func connectStorage(ctx context.Context) (model.Storage, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	return storage.Connect(ctx, cfg.Storage)
}

func newRootCmd(fs afero.Fs, openStorage storageFactory) *cobra.Command {
	var dir string

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and publish quicksnatch level descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&dir, "dir", "d", "levels", "directory holding level<N>/level_info.json")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in levels and whether a descriptor exists for each",
			RunE: func(cmd *cobra.Command, _ []string) error {
				source := catalog.NewFileSource(fs, dir)
				for _, lvl := range catalog.Default().Levels() {
					state := "ok"
					if _, err := source.LoadLevelInfo(cmd.Context(), lvl.Number); err != nil {
						state = describe(err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", lvl.Number, lvl.Title, state)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check every level descriptor decodes and matches its level",
			RunE: func(cmd *cobra.Command, _ []string) error {
				source := catalog.NewFileSource(fs, dir)
				var errs []error
				for _, lvl := range catalog.Default().Levels() {
					_, err := source.LoadLevelInfo(cmd.Context(), lvl.Number)
					switch {
					case err == nil:
					case errors.Is(err, model.ErrNotFound):
						fmt.Fprintf(cmd.OutOrStdout(), "level %d: no descriptor, fallback will be served\n", lvl.Number)
					default:
						errs = append(errs, err)
					}
				}
				if len(errs) > 0 {
					return errors.Join(errs...)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all descriptors valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "upload",
			Short: "Validate and upload level descriptors to object storage",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := openStorage(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to open storage: %w", err)
				}
				return upload(cmd, fs, dir, store)
			},
		},
	)

	return root
}

func upload(cmd *cobra.Command, fs afero.Fs, dir string, store model.Storage) error {
	uploaded := 0
	for _, lvl := range catalog.Default().Levels() {
		key := catalog.LevelInfoKey(lvl.Number)
		data, err := afero.ReadFile(fs, path.Join(dir, key))
		if err != nil {
			if errors.Is(err, afero.ErrFileNotFound) {
				continue
			}
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if _, err := catalog.DecodeLevelInfo(lvl.Number, data); err != nil {
			return err
		}
		if err := store.Upload(cmd.Context(), key, bytes.NewReader(data)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n", key)
		uploaded++
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d descriptors uploaded\n", uploaded)
	return nil
}

func describe(err error) string {
	if errors.Is(err, model.ErrNotFound) {
		return "missing"
	}
	return "invalid: " + err.Error()
}
