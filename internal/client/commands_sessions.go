package client

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-session-sync/internal/utils"
	"github.com/MKhiriev/go-session-sync/models"
)

var listFields = []string{models.FieldName, models.FieldDate, models.FieldTag, models.FieldTabsNumber}

func newListCmd(rt *runtime) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List local sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := rt.ctx(cmd)
			svcs := rt.app.Services()

			var (
				sessions []models.Session
				err      error
			)
			if tag != "" {
				sessions, err = svcs.TagService.ListByTag(ctx, tag, listFields...)
			} else {
				sessions, err = svcs.SessionService.GetAll(ctx, listFields...)
			}
			if err != nil {
				return err
			}

			return printSessions(cmd.OutOrStdout(), sessions)
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only sessions carrying this tag")

	return cmd
}

func newSaveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "save <file|->",
		Short: "Save sessions from a JSON file into the local store",
		Long: `Save stores every session in the file, replacing local copies with the
same id. Sessions without an id get a fresh one, sessions without a date
are dated now and sessions without a lastEditedTime are stamped now. A
lastEditedTime present in the file is kept, so use import to merge files
by edit time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rt.ctx(cmd)

			sessions, err := readSessions(cmd, args[0])
			if err != nil {
				return err
			}

			ids := utils.NewUUIDGenerator()
			for _, s := range sessions {
				if s.ID == "" {
					s.ID = ids.Generate()
				}
				if s.Date == 0 {
					s.Date = time.Now().UnixMilli()
				}
				if err = rt.app.Services().SessionService.Save(ctx, s); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.ID)
			}
			return nil
		},
	}
}

func newImportCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Import sessions, keeping newer local copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rt.ctx(cmd)

			sessions, err := readSessions(cmd, args[0])
			if err != nil {
				return err
			}

			n, err := rt.app.Services().ImportService.Import(ctx, sessions)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d sessions\n", n, len(sessions))
			return err
		},
	}
}

func newExportCmd(rt *runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every local session as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := rt.app.Services().SessionService.GetAll(rt.ctx(cmd))
			if err != nil {
				return err
			}

			if output == "" {
				return writeJSON(cmd.OutOrStdout(), sessions)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err = writeJSON(f, sessions); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")

	return cmd
}

func newRenameCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a local session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.app.Services().SessionService.Rename(rt.ctx(cmd), args[0], args[1])
		},
	}
}

func newRemoveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete local sessions; connected stores delete them remotely on next sync",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rt.ctx(cmd)
			for _, id := range args {
				if err := rt.app.Services().SessionService.Remove(ctx, id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newWipeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete every local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.app.Services().SessionService.RemoveAll(rt.ctx(cmd))
		},
	}
}

func newTagCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage session tags",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <tag>",
			Short: "Attach a tag; reserved and duplicate tags are ignored",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return rt.app.Services().TagService.AddTag(rt.ctx(cmd), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "rm <id> <tag>",
			Short: "Detach a tag",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return rt.app.Services().TagService.RemoveTag(rt.ctx(cmd), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "ls <tag>",
			Short: "List sessions carrying a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				sessions, err := rt.app.Services().TagService.ListByTag(rt.ctx(cmd), args[0], listFields...)
				if err != nil {
					return err
				}
				return printSessions(cmd.OutOrStdout(), sessions)
			},
		},
	)

	return cmd
}
