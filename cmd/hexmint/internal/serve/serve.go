package serve

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/4b11b4/hexmint/cmd/hexmint/internal"
	"github.com/4b11b4/hexmint/pkg/metrics"
	httputil "github.com/4b11b4/hexmint/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Root contains `serve` command definition.
var Root = &cobra.Command{
	Use:   "serve",
	Short: "Serve one-time codes over HTTP",
	Long: `Run a long-lived HTTP server minting codes on demand. Codes are minted on
'POST /v1/code'; prometheus instruments are exposed on '/metrics'.`,
	Args: cobra.NoArgs,
	RunE: serveFunc,
}

func serveFunc(_ *cobra.Command, _ []string) error {
	log, err := internal.NewLogger()
	if err != nil {
		return err
	}

	s, err := internal.OpenStore(log)
	if err != nil {
		return err
	}

	defer s.Close()

	m := metrics.NewMintMetrics()

	if st, err := s.Status(); err == nil {
		m.SetRemaining(st.Remaining)
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/code", newMintHandler(s, m, log))
	mux.Handle("/metrics", promhttp.Handler())

	srv := httputil.New(internal.ServerAddress(), mux,
		httputil.WithShutdownTimeout(internal.ShutdownTimeout()),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()

		log.Info("shutting down HTTP server")

		if err := srv.Shutdown(); err != nil {
			log.Error("HTTP server shutdown",
				zap.Error(err),
			)
		}
	}()

	log.Info("listening",
		zap.String("address", internal.ServerAddress()),
	)

	return srv.Serve()
}
