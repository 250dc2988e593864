package cli

import (
	"context"

	"github.com/spf13/cobra"

	"staybook/internal/config"
	"staybook/internal/service"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	apiBase  string
	timeout  int
	logLevel string

	cfg *config.Config
}

// NewRootCmd creates the bookctl command tree
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Browse and book properties from the terminal",
		Long:          "bookctl lists properties from the booking API with the same filters and pagination as the web client, and books stays interactively.",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiBase, "api-base", "", "booking API base URL (overrides BOOKING_API_BASE)")
	cmd.PersistentFlags().IntVar(&opts.timeout, "timeout", 0, "request timeout in seconds (overrides BOOKING_API_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	cmd.AddCommand(newPropertiesCmd(opts), newBookCmd(opts))

	return cmd
}

const rootCmdExample = `  # First page of every property
  bookctl properties

  # Super host apartments in Canada under $300, page 2
  bookctl properties --location CA --house-type Apartment --rate-max 300 --super-host --page 2

  # Book a stay
  bookctl book 42`

// setup loads configuration, applies flag overrides and stores the logger in the command context
func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.apiBase != "" {
		cfg.BookingAPI.BaseURL = o.apiBase
	}
	if o.timeout > 0 {
		cfg.BookingAPI.Timeout = o.timeout
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	cfg.Logging.Format = "console"
	o.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

func (o *rootOptions) backend() service.Backend {
	return service.NewBookingAPIClient(&o.cfg.BookingAPI)
}
