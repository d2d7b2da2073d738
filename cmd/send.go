// Package cmd holds the auxiliary CLI subcommands.
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bootj05/Solder-goggles/internal/logging"
	"github.com/Bootj05/Solder-goggles/internal/nats"
)

// CreateSendCmd creates the send command, which delivers a single
// command string to a running controller over NATS or HTTP.
func CreateSendCmd() *cobra.Command {
	var natsURL string
	var httpURL string
	var username string
	var password string
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send a command to a running controller",
		Long: `Delivers a single command string (next, prev, set:<n>, bright:<n>, ` +
			`color:#RRGGBB, speed:<ms>, leds:<colors>) to a running controller. ` +
			`Uses NATS when --nats-url is set, otherwise posts to the HTTP API.`,
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			command := args[0]

			loggingConfig := logging.Config{
				Level:  "info",
				Format: "text",
			}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)
			logger := logging.GetLogger("send")

			if natsURL != "" {
				publisher, err := nats.NewCommandPublisher(natsURL, logger)
				if err != nil {
					logger.Error("Failed to connect to NATS", "url", natsURL, "error", err)
					os.Exit(1)
				}
				defer publisher.Close()

				if err := publisher.Send(command); err != nil {
					logger.Error("Failed to send command", "error", err)
					os.Exit(1)
				}
				return
			}

			url := strings.TrimSuffix(httpURL, "/") + "/api/command"
			req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(command))
			if err != nil {
				logger.Error("Failed to build request", "error", err)
				os.Exit(1)
			}
			req.Header.Set("Content-Type", "text/plain")
			if username != "" {
				req.SetBasicAuth(username, password)
			}

			client := &http.Client{Timeout: 5 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				logger.Error("Failed to send command", "url", url, "error", err)
				os.Exit(1)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusAccepted {
				logger.Error("Controller refused command", "status", resp.StatusCode)
				os.Exit(1)
			}

			fmt.Println("accepted")
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (preferred transport when set)")
	cmd.Flags().StringVar(&httpURL, "url", "http://127.0.0.1:8090", "Controller HTTP base URL")
	cmd.Flags().StringVar(&username, "username", "admin", "Basic auth username")
	cmd.Flags().StringVar(&password, "password", "password", "Basic auth password")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")

	return cmd
}
