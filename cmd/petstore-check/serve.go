package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Apurer/petstore-api-tests/internal/petstoretest"
)

func serveCmd(envFile *string) *cobra.Command {
	var (
		addr    string
		readLag int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fake petstore under /v2",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := bootstrap(cmd.Context(), *envFile)
			if err != nil {
				return err
			}
			defer deps.close()

			gin.SetMode(gin.ReleaseMode)
			fake := petstoretest.New(
				petstoretest.WithReadLag(readLag),
				petstoretest.WithMiddleware(otelgin.Middleware(serviceName,
					otelgin.WithTracerProvider(deps.instruments.TracerProvider),
				)),
			)
			deps.logger.Info("fake petstore listening", slog.String("addr", addr), slog.String("base_path", petstoretest.BasePath))
			if err := http.ListenAndServe(addr, fake.Handler()); err != nil {
				deps.logger.Error("fake petstore exited", slog.String("addr", addr), slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	cmd.Flags().IntVar(&readLag, "read-lag", 0, "Reads of a new pet that answer 404 before it becomes visible")
	return cmd
}
