package client

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-session-sync/internal/app"
	"github.com/MKhiriev/go-session-sync/models"
)

func newConnectCmd(rt *runtime) *cobra.Command {
	var cfg models.WebDAVConfig

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Store the WebDAV configuration and enable sync",
		Long: `Connect saves any of --url, --username and --password to the settings
store, checks permission for the server origin, creates the remote
directory when missing and marks sync as connected. Reconnecting resets
the last sync time and the removal queue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := rt.ctx(cmd)
			svcs := rt.app.Services()

			flags := cmd.Flags()
			if flags.Changed("url") || flags.Changed("username") || flags.Changed("password") {
				current, err := svcs.ConfigProvider.WebDAVConfig(ctx)
				if err != nil {
					return err
				}
				if flags.Changed("url") {
					current.URL = cfg.URL
				}
				if flags.Changed("username") {
					current.Username = cfg.Username
				}
				if flags.Changed("password") {
					current.Password = cfg.Password
				}
				if err = svcs.ConfigProvider.Save(ctx, current); err != nil {
					return err
				}
			}

			status, err := svcs.ConnectionService.Connect(ctx)
			if err != nil {
				return remoteError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.StatusKey(nil), status.SignedInIdentity)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.URL, "url", "", "WebDAV directory URL")
	cmd.Flags().StringVar(&cfg.Username, "username", "", "WebDAV user name")
	cmd.Flags().StringVar(&cfg.Password, "password", "", "WebDAV password")

	return cmd
}

func newDisconnectCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disable sync; remote files are left alone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.app.Services().ConnectionService.Disconnect(rt.ctx(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.ConnectionKey(false))
			return nil
		},
	}
}

func newStatusCmd(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sync state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := rt.app.Services().ConnectionService.Status(rt.ctx(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, status)
			}

			fmt.Fprintln(out, app.ConnectionKey(status.Connected))
			if status.Connected {
				fmt.Fprintf(out, "identity: %s\n", status.SignedInIdentity)
				fmt.Fprintf(out, "last sync: %s\n", formatMillis(status.LastSyncTime))
				fmt.Fprintf(out, "pending removals: %d\n", len(status.RemovedQueue))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the state as JSON")

	return cmd
}

func newRemoteCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Operate on the WebDAV directory directly",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List the remote manifest",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entries, err := rt.app.Services().RemoteService.List(rt.ctx(cmd))
				if err != nil {
					return remoteError(cmd, err)
				}

				sessions := make([]models.Session, 0, len(entries))
				for _, e := range entries {
					sessions = append(sessions, models.Session{
						ID:         e.ID,
						Name:       e.AppProperties.Name,
						Date:       e.AppProperties.Date,
						Tag:        e.AppProperties.Tag,
						TabsNumber: e.AppProperties.TabsNumber,
					})
				}
				return printSessions(cmd.OutOrStdout(), sessions)
			},
		},
		&cobra.Command{
			Use:   "push <id>...",
			Short: "Upload local sessions",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := rt.ctx(cmd)
				svcs := rt.app.Services()
				for _, id := range args {
					s, err := svcs.SessionService.Get(ctx, id)
					if err != nil {
						return err
					}
					if err = svcs.RemoteService.Upload(ctx, s); err != nil {
						return remoteError(cmd, err)
					}
				}
				return nil
			},
		},
		newRemotePullCmd(rt),
		&cobra.Command{
			Use:   "rm <id>...",
			Short: "Delete remote sessions",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := rt.ctx(cmd)
				for _, id := range args {
					if err := rt.app.Services().RemoteService.Delete(ctx, id); err != nil {
						return remoteError(cmd, err)
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "wipe",
			Short: "Delete every remote session listed in the manifest",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return remoteError(cmd, rt.app.Services().RemoteService.DeleteAll(rt.ctx(cmd)))
			},
		},
	)

	return cmd
}

func newSyncCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run one full sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return remoteError(cmd, rt.app.Services().SyncService.FullSync(rt.ctx(cmd)))
		},
	}
}

func newDaemonCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Sync every --sync-interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(rt.ctx(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return rt.app.RunDaemon(ctx)
		},
	}
}

func newRemotePullCmd(rt *runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "pull <id>...",
		Short: "Download remote sessions into the local store",
		Long: `Pull downloads the given sessions and imports them. A local copy that is
the same edit or newer is kept. With --force every download replaces the
local copy as is, remote edit time included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rt.ctx(cmd)
			svcs := rt.app.Services()

			downloaded := make([]models.Session, 0, len(args))
			for _, id := range args {
				s, err := svcs.RemoteService.Download(ctx, id)
				if err != nil {
					return remoteError(cmd, err)
				}
				downloaded = append(downloaded, s)
			}

			if force {
				for _, s := range downloaded {
					if err := svcs.SessionService.Save(ctx, s); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pulled %d of %d sessions\n", len(downloaded), len(args))
				return nil
			}

			n, err := svcs.ImportService.Import(ctx, downloaded)
			fmt.Fprintf(cmd.OutOrStdout(), "pulled %d of %d sessions\n", n, len(args))
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace local copies even when they are newer")

	return cmd
}
