package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/petstore-api-tests/internal/clients/http/petstore"
	"github.com/Apurer/petstore-api-tests/internal/contract"
	"github.com/Apurer/petstore-api-tests/internal/fixtures"
	"github.com/Apurer/petstore-api-tests/internal/pets"
	"github.com/Apurer/petstore-api-tests/internal/validator"
)

func smokeCmd(envFile *string) *cobra.Command {
	var (
		baseURL    string
		apiKey     string
		attempts   int
		retryPause time.Duration
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Create, read, update and delete one pet against BASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, err := bootstrap(ctx, *envFile)
			if err != nil {
				return err
			}
			defer deps.close()

			client, err := petstore.NewFromConfig(deps.cfg,
				petstore.WithBaseURL(baseURL),
				petstore.WithAPIKey(apiKey),
				petstore.WithLogger(deps.logger),
				petstore.WithTracer(deps.instruments.Tracer("petstore.client")),
				petstore.WithMeter(deps.instruments.Meter("petstore.client")),
			)
			if err != nil {
				return err
			}
			return runSmoke(ctx, client, deps.logger, attempts, retryPause)
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API root (overrides BASE_URL)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "api_key header value (overrides API_KEY)")
	cmd.Flags().IntVar(&attempts, "read-attempts", 3, "GET attempts while a new pet is not yet visible")
	cmd.Flags().DurationVar(&retryPause, "read-pause", 2*time.Second, "Pause between GET attempts")
	return cmd
}

// runSmoke walks one pet through its lifecycle and returns every contract
// violation it saw. Transport errors stop the run.
func runSmoke(ctx context.Context, client *petstore.Client, logger *slog.Logger, attempts int, pause time.Duration) error {
	pet := fixtures.NewPet()
	var violations []error
	check := func(step string, err error) {
		if err != nil {
			logger.Error(step+" failed", slog.String("kind", validator.KindOf(err)), slog.String("error", err.Error()))
			violations = append(violations, fmt.Errorf("%s: %w", step, err))
			return
		}
		logger.Info(step + " ok")
	}

	created, err := client.CreatePet(ctx, pet)
	if err != nil {
		return err
	}
	check("create", errors.Join(
		validator.CheckStatusCode(created, http.StatusOK),
		validator.CheckJSONValue(created, "id", pet.ID),
		validator.CheckJSONValue(created, "name", pet.Name),
	))

	var fetched *petstore.Response
	for attempt := 0; attempt < attempts; attempt++ {
		fetched, err = client.GetPet(ctx, pet.ID)
		if err != nil {
			return err
		}
		if fetched.StatusCode == http.StatusOK {
			break
		}
		if attempt < attempts-1 {
			time.Sleep(pause)
		}
	}
	check("read", errors.Join(
		validator.CheckStatusCode(fetched, http.StatusOK),
		validator.CheckJSONValue(fetched, "id", pet.ID),
		validator.CheckSchema(fetched, contract.SchemaPet),
	))

	pet.Name = "UpdatedName"
	pet.Status = pets.StatusSold
	updated, err := client.UpdatePet(ctx, pet)
	if err != nil {
		return err
	}
	check("update", errors.Join(
		validator.CheckStatusCode(updated, http.StatusOK),
		validator.CheckJSONValue(updated, "name", pet.Name),
		validator.CheckJSONValue(updated, "status", string(pet.Status)),
	))

	deleted, err := client.DeletePet(ctx, pet.ID)
	if err != nil {
		return err
	}
	check("delete", validator.CheckStatusCodeIn(deleted, http.StatusOK, http.StatusNotFound))

	unknown, err := client.GetPet(ctx, fixtures.UnknownPetID())
	if err != nil {
		return err
	}
	check("unknown id", validator.CheckStatusCode(unknown, http.StatusNotFound))

	if len(violations) > 0 {
		return fmt.Errorf("%d of 5 smoke steps failed: %w", len(violations), errors.Join(violations...))
	}
	return nil
}
