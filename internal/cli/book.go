package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"staybook/internal/model"
	"staybook/internal/service"
)

func newBookCmd(root *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "book <property-id>",
		Short: "Book a stay, checking availability as the dates change",
		Long: `Opens a booking form for a property. Enter one field per line:

  date YYYY-MM-DD   check-in date
  duration N        nights to stay
  guests N          number of guests
  reserve           submit the booking
  quit              leave without booking

Availability is checked once the date or duration stops changing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("debounce") {
				debounce = time.Duration(root.cfg.Availability.DebounceMs) * time.Millisecond
			}

			ctx := cmd.Context()
			backend := root.backend()
			property, err := backend.GetProperty(ctx, args[0])
			if err != nil {
				if errors.Is(err, model.ErrPropertyNotFound) {
					return fmt.Errorf("property %s not found", args[0])
				}
				return err
			}

			session := &bookingSession{
				property: property,
				booking:  service.NewBookingService(backend),
				out:      &syncWriter{w: cmd.OutOrStdout()},
				prompt:   isTerminal(os.Stdin) && cmd.InOrStdin() == os.Stdin,
			}
			return session.run(ctx, cmd.InOrStdin(), backend, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", service.DefaultAvailabilityDebounce,
		"quiet period before availability is checked (overrides AVAILABILITY_DEBOUNCE_MS)")

	return cmd
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// syncWriter serializes writes from the input loop and availability updates
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

// bookingSession is an interactive booking form for one property
type bookingSession struct {
	property *model.Property
	booking  *service.BookingService
	out      *syncWriter
	prompt   bool

	form model.ReservationForm
}

func (s *bookingSession) run(ctx context.Context, in io.Reader, backend service.BookingBackend, debounce time.Duration) error {
	watcher := service.NewAvailabilityWatcher(backend, debounce, s.showAvailability)
	defer watcher.Stop()

	s.out.Printf("Booking %s (%s)\n", titleStyle.Render(s.property.Name), formatRate(s.property.Rate))
	s.out.Printf("%s\n", mutedStyle.Render("Commands: date, duration, guests, reserve, quit"))

	scanner := bufio.NewScanner(in)
	for {
		if s.prompt {
			s.out.Printf("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		command, value, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		value = strings.TrimSpace(value)

		switch strings.ToLower(command) {
		case "":
		case "date":
			s.form.CheckinDate = value
			watcher.Request(s.property.ID, s.form.CheckinDate, s.form.Duration)
		case "duration":
			s.form.Duration = value
			watcher.Request(s.property.ID, s.form.CheckinDate, s.form.Duration)
		case "guests":
			s.form.Guests = value
		case "reserve":
			if s.reserve(ctx) {
				return nil
			}
		case "quit", "exit":
			return nil
		case "help":
			s.out.Printf("%s\n", mutedStyle.Render("Commands: date YYYY-MM-DD, duration N, guests N, reserve, quit"))
		default:
			s.out.Printf("%s\n", warningStyle.Render(fmt.Sprintf("Unknown command %q, type help for a list.", command)))
		}
	}
}

// reserve submits the form and reports whether a reservation was made
func (s *bookingSession) reserve(ctx context.Context) bool {
	req, msgs := service.ParseReservationForm(s.form)
	if len(msgs) > 0 {
		for _, msg := range msgs {
			s.out.Printf("%s\n", warningStyle.Render(msg))
		}
		return false
	}

	reservation, err := s.booking.Reserve(ctx, s.property.ID, req)
	switch {
	case errors.Is(err, model.ErrUnavailable):
		s.out.Printf("%s\n", unavailableStyle.Render(service.MsgUnavailable))
		return false
	case err != nil:
		zerolog.Ctx(ctx).Debug().Err(err).Str("property_id", s.property.ID).Msg("reservation failed")
		s.out.Printf("%s\n", unavailableStyle.Render(service.MsgReservationFailed))
		return false
	}

	s.out.Printf("%s %s from %s for %s, %d guest(s). Confirmation %s\n",
		availableStyle.Render("Reserved"),
		s.property.Name,
		reservation.CheckinDate,
		nights(reservation.Duration),
		reservation.Guests,
		reservation.ID,
	)
	return true
}

func (s *bookingSession) showAvailability(update service.AvailabilityUpdate) {
	switch {
	case update.Err != nil:
		s.out.Printf("%s\n", warningStyle.Render("Could not check availability, try again."))
	case update.Result.Available:
		s.out.Printf("%s %s for %s\n",
			availableStyle.Render("Available"),
			update.Result.CheckinDate,
			nights(update.Result.Duration),
		)
	default:
		s.out.Printf("%s\n", unavailableStyle.Render(service.MsgUnavailable))
	}
}
