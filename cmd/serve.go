package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve static options as a remote search endpoint",
	Long: `Serves the configured static options over HTTP so other select boxes
can use them as a remote source:

  forage-select serve --config cities.toml --addr 127.0.0.1:8765
  forage-select pick --url 'http://127.0.0.1:8765/search?q=SEARCH_VALUE' --response-path results

Stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveSource sourceFlags
	serveAddr   string
	serveLimit  int
)

func init() {
	serveSource.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8765", "Address to listen on")
	serveCmd.Flags().IntVar(&serveLimit, "limit", 0, "Maximum number of results per query (0 for no limit)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := loadApp(serveSource)
	if err != nil {
		return err
	}
	if a.Remote() {
		return errors.ValidationError("serve needs static options, not a remote source")
	}
	// Fail on a broken data file before listening.
	if _, err := a.Items(); err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ln, err := net.Listen("tcp", serveAddr)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to listen on %s", serveAddr), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logInfo("Serving options on http://%s/search?q=SEARCH_VALUE", ln.Addr())
	return serve.New(a, serveLimit).Serve(ctx, ln)
}
