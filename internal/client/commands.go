package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-session-sync/internal/app"
	"github.com/MKhiriev/go-session-sync/internal/config"
	"github.com/MKhiriev/go-session-sync/internal/logger"
	"github.com/MKhiriev/go-session-sync/models"
)

// runtime is shared by the commands of one root command.
type runtime struct {
	build   models.AppBuildInfo
	flags   *config.Flags
	verbose bool

	app *App
}

// NewRootCmd creates the sessionsync command tree.
func NewRootCmd(build models.AppBuildInfo) *cobra.Command {
	root, _ := newRoot(build)
	return root
}

func newRoot(build models.AppBuildInfo) (*cobra.Command, *runtime) {
	rt := &runtime{build: build}

	root := &cobra.Command{
		Use:   "sessionsync",
		Short: "Save, tag and sync browser tab sessions over WebDAV",
		Long: `sessionsync keeps a local store of browser tab sessions and mirrors it
to a WebDAV directory as one JSON file per session plus an index.json
manifest.

Configuration is read from APP_* / WEBDAV_* environment variables, the
flags below and an optional JSON file (--config).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return rt.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.close(cmd.Context())
		},
	}

	rt.flags = config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(
		newVersionCmd(rt),
		newConnectCmd(rt),
		newDisconnectCmd(rt),
		newStatusCmd(rt),
		newListCmd(rt),
		newSaveCmd(rt),
		newImportCmd(rt),
		newExportCmd(rt),
		newRenameCmd(rt),
		newRemoveCmd(rt),
		newWipeCmd(rt),
		newTagCmd(rt),
		newRemoteCmd(rt),
		newSyncCmd(rt),
		newDaemonCmd(rt),
	)

	return root, rt
}

// Execute runs the command tree with os.Args. The application is closed
// even when the command fails.
func Execute(ctx context.Context, build models.AppBuildInfo) error {
	root, rt := newRoot(build)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, rt.close(ctx))
}

func (rt *runtime) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.GetClientConfig(rt.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.NewClientLogger("sessionsync", logger.FileOptions{Path: cfg.App.LogFile})
	if !rt.verbose {
		log.Logger = log.Level(zerolog.InfoLevel)
	}

	a, err := NewApp(ctx, cfg, rt.build, log)
	if err != nil {
		return err
	}
	rt.app = a
	return nil
}

func (rt *runtime) close(ctx context.Context) error {
	if rt.app == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	err := rt.app.Close(ctx)
	rt.app = nil
	return err
}

// ctx returns the command context carrying the application logger.
func (rt *runtime) ctx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return rt.app.Context(ctx)
}

// remoteError prints the status key of a failed remote call before
// returning it.
func remoteError(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), app.StatusKey(err))
	}
	return err
}

func newVersionCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", rt.build.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", rt.build.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", rt.build.BuildCommit())
			return nil
		},
	}
}

// ── output helpers ──────────────────────────────────────────────────────────

func printSessions(w io.Writer, sessions []models.Session) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tTABS\tTAGS")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Name, formatMillis(s.Date), s.TabsNumber, strings.Join(s.Tag, ","))
	}
	return tw.Flush()
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readSessions decodes a session array, or a single session object, from
// path; "-" reads stdin.
func readSessions(cmd *cobra.Command, path string) ([]models.Session, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var one models.Session
		if err = json.Unmarshal(data, &one); err != nil {
			return nil, err
		}
		return []models.Session{one}, nil
	}

	var many []models.Session
	if err = json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return many, nil
}
